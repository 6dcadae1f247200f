package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/texturepro/internal/app"
	configapp "github.com/doeshing/texturepro/internal/application/config"
	"github.com/doeshing/texturepro/internal/domain"
	configinfra "github.com/doeshing/texturepro/internal/infrastructure/config"
)

const (
	envKeyEditor  = "EDITOR"
	defaultEditor = "vi"
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect texturepro configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	configCmd.AddCommand(
		newConfigShowCommand(container),
		newConfigPathCommand(container),
		newConfigGetCommand(container),
		newConfigSetCommand(container),
		newConfigEditCommand(container),
		newConfigValidateCommand(container),
		newConfigResetCommand(container),
		newConfigDiffCommand(container),
	)

	return configCmd
}

// newConfigShowCommand creates the 'config show' subcommand
func newConfigShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show full configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// newConfigPathCommand creates the 'config path' subcommand
func newConfigPathCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := configLoader(container)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), loader.Path())
			return nil
		},
	}
}

// newConfigGetCommand creates the 'config get' subcommand
func newConfigGetCommand(container *app.Container) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get a specific configuration value",
		RunE: func(cmd *cobra.Command, args []string) error {
			if key == "" {
				return errors.New(ErrKeyRequired)
			}
			return getConfigurationValue(cmd.Context(), cmd.OutOrStdout(), container, key)
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Key path (e.g., preferences.default_model)")
	return cmd
}

// newConfigSetCommand creates the 'config set' subcommand
func newConfigSetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value (value accepts YAML syntax)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigurationValue(cmd.Context(), container, args[0], strings.Join(args[1:], " "))
		},
	}
}

// newConfigEditCommand creates the 'config edit' subcommand
func newConfigEditCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigurationInEditor(container)
		},
	}
}

// newConfigValidateCommand creates the 'config validate' subcommand
func newConfigValidateCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			if err := configapp.Validate(cfg); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgConfigurationValid)
			return nil
		},
	}
}

// newConfigResetCommand creates the 'config reset' subcommand
func newConfigResetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults (the old file is backed up)",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := configLoader(container)
			if err != nil {
				return err
			}
			backup, err := loader.Backup()
			if err != nil {
				return fmt.Errorf("failed to create configuration backup: %w", err)
			}
			if _, err := loader.Reset(); err != nil {
				return fmt.Errorf("failed to reset configuration: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration reset at %s\n", loader.Path())
			if backup != "" {
				fmt.Fprintf(out, "Previous configuration saved to %s\n", backup)
			}
			return nil
		},
	}
}

// newConfigDiffCommand creates the 'config diff' subcommand
func newConfigDiffCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show diff versus default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigurationDiff(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// showConfiguration displays the full configuration in YAML format
func showConfiguration(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	fmt.Fprint(out, string(data))
	return nil
}

// getConfigurationValue retrieves a specific configuration value by key path
func getConfigurationValue(ctx context.Context, out io.Writer, container *app.Container, keyPath string) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfgMap, err := convertDomainConfigToMap(cfg)
	if err != nil {
		return err
	}

	value, found := traverseKey(cfgMap, strings.Split(keyPath, "."))
	if !found {
		return fmt.Errorf("key %s not found in configuration", keyPath)
	}

	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	fmt.Fprint(out, string(data))
	return nil
}

// setConfigurationValue updates a configuration value by key path
func setConfigurationValue(ctx context.Context, container *app.Container, keyPath string, value string) error {
	loader, err := configLoader(container)
	if err != nil {
		return err
	}
	cfg, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfgMap, err := convertDomainConfigToMap(cfg)
	if err != nil {
		return err
	}

	if !setMapValue(cfgMap, strings.Split(keyPath, "."), parseValue(value)) {
		return fmt.Errorf("unable to set key %s", keyPath)
	}

	updated, err := convertMapToDomainConfig(cfgMap)
	if err != nil {
		return err
	}

	return saveConfigWithBackup(loader, updated)
}

// saveConfigWithBackup validates cfg, backs up the current file and saves
func saveConfigWithBackup(loader *configinfra.FileLoader, cfg domain.Config) error {
	if err := configapp.Validate(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if _, err := loader.Backup(); err != nil {
		return fmt.Errorf("failed to create configuration backup: %w", err)
	}
	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

// editConfigurationInEditor opens the configuration file in the user's editor
func editConfigurationInEditor(container *app.Container) error {
	loader, err := configLoader(container)
	if err != nil {
		return err
	}

	editorCommand := getEditorCommand()
	cmd := exec.Command(editorCommand, loader.Path())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", editorCommand, err)
	}

	return nil
}

// showConfigurationDiff shows the difference between current and default configuration
func showConfigurationDiff(ctx context.Context, out io.Writer, container *app.Container) error {
	currentConfig, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load current configuration: %w", err)
	}

	defaultConfig, err := configinfra.Default()
	if err != nil {
		return fmt.Errorf("failed to load default configuration: %w", err)
	}

	diff := cmp.Diff(defaultConfig, currentConfig)
	if diff == "" {
		fmt.Fprintln(out, MsgNoDifferencesFromDefault)
		return nil
	}

	fmt.Fprintln(out, diff)
	return nil
}

// Helper functions

func configLoader(container *app.Container) (*configinfra.FileLoader, error) {
	if container.ConfigLoader == nil {
		return nil, errors.New(ErrConfigLoaderUnavailable)
	}
	return container.ConfigLoader, nil
}

// getEditorCommand retrieves the editor command from environment or returns default
func getEditorCommand() string {
	if editor := os.Getenv(envKeyEditor); editor != "" {
		return editor
	}
	return defaultEditor
}

// parseValue parses input as YAML, falling back to the literal string
func parseValue(input string) interface{} {
	var parsed interface{}
	if err := yaml.Unmarshal([]byte(input), &parsed); err != nil {
		return input
	}
	return parsed
}

// traverseKey walks a nested map along path
func traverseKey(data interface{}, path []string) (interface{}, bool) {
	current := data
	for _, segment := range path {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// setMapValue sets a value in a nested map, creating intermediate maps
func setMapValue(root map[string]interface{}, path []string, value interface{}) bool {
	if len(path) == 0 {
		return false
	}
	current := root
	for _, segment := range path[:len(path)-1] {
		next, ok := current[segment]
		if !ok {
			child := map[string]interface{}{}
			current[segment] = child
			current = child
			continue
		}
		child, ok := next.(map[string]interface{})
		if !ok {
			return false
		}
		current = child
	}
	current[path[len(path)-1]] = value
	return true
}

// convertDomainConfigToMap converts domain.Config to map[string]interface{}
func convertDomainConfigToMap(cfg domain.Config) (map[string]interface{}, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var cfgMap map[string]interface{}
	if err := yaml.Unmarshal(raw, &cfgMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal to map: %w", err)
	}

	return cfgMap, nil
}

// convertMapToDomainConfig converts map[string]interface{} to domain.Config
func convertMapToDomainConfig(cfgMap map[string]interface{}) (domain.Config, error) {
	updatedRaw, err := yaml.Marshal(cfgMap)
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to marshal updated map: %w", err)
	}

	var updated domain.Config
	if err := yaml.Unmarshal(updatedRaw, &updated); err != nil {
		return domain.Config{}, fmt.Errorf("failed to unmarshal to Config: %w", err)
	}

	return updated, nil
}
