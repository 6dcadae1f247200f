// Package cli builds the texturepro command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/texturepro/internal/app"
	"github.com/doeshing/texturepro/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The container is built once flags
// are parsed, so --config and --model take effect.
func NewRootCmd(ctx context.Context, opts Options) *cobra.Command {
	var (
		container  = &app.Container{}
		configPath string
		model      string
	)

	root := &cobra.Command{
		Use:   "texturepro",
		Short: "TexturePro - texture prompt generator",
		Long: "TexturePro assembles texture-generation prompts from material, color and lighting\n" +
			"choices, suggests diverse combinations and writes titles and keywords with an AI model.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipContainer(cmd) {
				return nil
			}
			built, err := app.BuildContainer(cmd.Context(), app.Options{
				ConfigPath: configPath,
				Model:      model,
				Verbose:    opts.Verbose,
			})
			if err != nil {
				return err
			}
			built.Clipboard = NewClipboard()
			*container = *built
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return container.Close()
		},
	}
	root.SetContext(ctx)

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.texturepro/config.yaml, or $TEXTUREPRO_CONFIG)")
	root.PersistentFlags().StringVar(&model, "model", "", "Override the default model for this run")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "Log debug output to stderr")

	root.AddCommand(
		commands.NewGenerateCommand(container),
		commands.NewRandomizeCommand(container),
		commands.NewCustomCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewCatalogCommand(container),
		commands.NewConfigCommand(container),
		commands.NewModelsCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewCacheCommand(container),
		commands.NewVersionCommand(),
	)
	return root
}

// skipContainer reports commands that run without configuration.
func skipContainer(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return true
	}
	return false
}
