package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/texturepro/internal/app"
	"github.com/doeshing/texturepro/internal/application/suggestion"
	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/infrastructure/ai"
	"github.com/doeshing/texturepro/internal/ports"
)

// NewModelsCommand creates the models command with all subcommands
func NewModelsCommand(container *app.Container) *cobra.Command {
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "Manage text-generation model configurations",
	}

	modelsCmd.AddCommand(
		newModelsListCommand(container),
		newModelsTestCommand(container),
		newModelsUseCommand(container),
		newModelsAddCommand(container),
		newModelsRemoveCommand(container),
	)

	return modelsCmd
}

// newModelsListCommand creates the 'models list' subcommand
func newModelsListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured models",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listModels(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// newModelsTestCommand creates the 'models test' subcommand
func newModelsTestCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "test <name>",
		Short: "Send a test request and check that the reply parses as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return testModel(cmd.Context(), cmd.OutOrStdout(), container, args[0])
		},
	}
}

// newModelsUseCommand creates the 'models use' subcommand
func newModelsUseCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Set default model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateModels(cmd.Context(), container, func(cfg *domain.Config) error {
				return cfg.SetDefaultModel(args[0])
			})
		},
	}
}

// newModelsAddCommand creates the 'models add' subcommand
func newModelsAddCommand(container *app.Container) *cobra.Command {
	var (
		model    domain.ModelDefinition
		provider string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new model definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			model.Provider = domain.ProviderKind(provider)
			if model.Name == "" {
				return errors.New("--name is required")
			}
			if model.MaxTokens <= 0 {
				return fmt.Errorf("max-tokens must be positive, got %d", model.MaxTokens)
			}
			return updateModels(cmd.Context(), container, func(cfg *domain.Config) error {
				return cfg.AddModel(model)
			})
		},
	}

	cmd.Flags().StringVar(&model.Name, "name", "", "Model name (identifier)")
	cmd.Flags().StringVar(&provider, "provider", string(domain.ProviderHTTP), "Provider kind (http|openai|offline)")
	cmd.Flags().StringVar(&model.Endpoint, "endpoint", "", "Provider endpoint URL")
	cmd.Flags().StringVar(&model.ModelID, "model-id", "", "Model identifier at provider")
	cmd.Flags().StringVar(&model.AuthEnvVar, "auth-env", "", "Environment variable containing API key")
	cmd.Flags().StringVar(&model.OrgEnvVar, "org-env", "", "Environment variable containing org/project ID")
	cmd.Flags().StringVar(&model.System, "system", "", "System message sent before every instruction")
	cmd.Flags().IntVar(&model.MaxTokens, "max-tokens", domain.DefaultMaxTokens, "Max tokens for responses")

	return cmd
}

// newModelsRemoveCommand creates the 'models remove' subcommand
func newModelsRemoveCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove model definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateModels(cmd.Context(), container, func(cfg *domain.Config) error {
				return cfg.RemoveModel(args[0])
			})
		},
	}
}

// listModels lists all configured models
func listModels(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fmt.Fprintf(out, "NAME\tPROVIDER\tMODEL ID\tKEY\tDEFAULT\n")

	for _, model := range cfg.Models {
		defaultMarker := ""
		if cfg.Preferences.DefaultModel == model.Name {
			defaultMarker = "*"
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n",
			model.Name,
			model.Kind(),
			model.ModelID,
			keyStatus(model),
			defaultMarker)
	}

	if len(cfg.Preferences.FallbackModels) > 0 {
		fmt.Fprintf(out, "Fallbacks: %s\n", strings.Join(cfg.Preferences.FallbackModels, ", "))
	}

	return nil
}

func keyStatus(model domain.ModelDefinition) string {
	switch {
	case model.AuthEnvVar == "":
		return "-"
	case os.Getenv(model.AuthEnvVar) == "":
		return "missing"
	default:
		return "set"
	}
}

// testModel sends one request to a model and checks the reply
func testModel(ctx context.Context, out io.Writer, container *app.Container, modelName string) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	model, exists := cfg.FindModelByName(modelName)
	if !exists {
		return fmt.Errorf("model %s not found", modelName)
	}

	provider, err := ai.NewFactory(cfg.GetTimeout()).ForModel(model)
	if err != nil {
		return fmt.Errorf("failed to create provider for model %s: %w", modelName, err)
	}

	testCtx, cancel := context.WithTimeout(ctx, cfg.GetTimeout())
	defer cancel()

	started := time.Now()
	resp, err := provider.Generate(testCtx, ports.ProviderRequest{
		Instruction: ModelTestPrompt,
		Model:       model,
	})
	if err != nil {
		return fmt.Errorf("model %s test failed (%s): %w", modelName, domain.FailureReason(err), err)
	}
	if _, err := suggestion.ParseObject(resp.Text); err != nil {
		return fmt.Errorf("model %s replied without a JSON object: %w", modelName, err)
	}

	fmt.Fprintf(out, "Model %s (%s) responded in %s.\n", modelName, resp.Model, time.Since(started).Round(time.Millisecond))
	return nil
}

// updateModels loads the config, applies mutate and saves it
func updateModels(ctx context.Context, container *app.Container, mutate func(*domain.Config) error) error {
	loader, err := configLoader(container)
	if err != nil {
		return err
	}
	cfg, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := mutate(&cfg); err != nil {
		return err
	}
	return saveConfigWithBackup(loader, cfg)
}
