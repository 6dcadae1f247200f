package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/texturepro/internal/app"
	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/infrastructure/cli/helpers"
	"github.com/doeshing/texturepro/internal/ports"
)

// generateOptions holds the flags of the generate command
type generateOptions struct {
	params     domain.PartialParameters
	random     bool
	enrich     bool
	copyPrompt bool
	spinner    bool
}

// NewGenerateCommand creates the generate command
func NewGenerateCommand(container *app.Container) *cobra.Command {
	var (
		opts     generateOptions
		noEnrich bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Assemble a texture prompt from material, colors and lighting",
		Long: "Assemble a texture prompt from the four parameters and record it in history.\n" +
			"With --random, parameters that were not given are filled by an AI suggestion\n" +
			"(or a local selection that avoids recent history).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.enrich = resolveEnrich(cmd, container.Config.Preferences.Enrich, opts.enrich, noEnrich)
			opts.spinner = helpers.IsTerminal(os.Stderr)
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), container, opts)
		},
	}

	addParameterFlags(cmd, &opts.params)
	cmd.Flags().BoolVarP(&opts.random, "random", "r", false, "Fill missing parameters with an AI suggestion")
	cmd.Flags().BoolVar(&opts.enrich, "enrich", false, "Request a title and keywords (default from config)")
	cmd.Flags().BoolVar(&noEnrich, "no-enrich", false, "Skip the title and keywords request")
	cmd.Flags().BoolVarP(&opts.copyPrompt, "copy", "c", false, "Copy the prompt to the clipboard")
	cmd.MarkFlagsMutuallyExclusive("enrich", "no-enrich")

	return cmd
}

// addParameterFlags registers one flag per texture parameter
func addParameterFlags(cmd *cobra.Command, params *domain.PartialParameters) {
	cmd.Flags().StringVar(&params.MaterialType, "material", "", "Material type (see 'texturepro catalog material')")
	cmd.Flags().StringVar(&params.PrimaryColorTone, "primary", "", "Primary color tone")
	cmd.Flags().StringVar(&params.SecondaryColorTone, "secondary", "", "Secondary color tone")
	cmd.Flags().StringVar(&params.LightingStyle, "lighting", "", "Lighting style")
}

func resolveEnrich(cmd *cobra.Command, configured, enrich, noEnrich bool) bool {
	switch {
	case noEnrich:
		return false
	case cmd.Flags().Changed("enrich"):
		return enrich
	default:
		return configured
	}
}

// runGenerate fills, generates and renders one prompt
func runGenerate(ctx context.Context, out, errOut io.Writer, container *app.Container, opts generateOptions) error {
	svc := container.GenerateService
	if svc == nil {
		return errors.New(ErrGenerateServiceUnavailable)
	}

	params, err := helpers.ResolveParameters(container.Catalogs, opts.params)
	if err != nil {
		return err
	}

	if opts.random && !params.Complete() {
		result, err := svc.RandomizeAll(ctx, params)
		if err != nil {
			return err
		}
		for _, key := range params.MissingKeys() {
			params = params.With(key, result.Parameters.Get(key))
		}
		if result.Source == domain.SourceFallback {
			fmt.Fprintf(errOut, "Using local selection (%s)\n", result.Reason)
		}
	}

	if opts.spinner && opts.enrich {
		spinner := helpers.NewSpinner(errOut, "Requesting title and keywords")
		svc = svc.WithObserver(spinner.Observer())
		defer spinner.Stop()
	}

	rec, err := svc.Generate(ctx, params, opts.enrich)
	if rec.ID == "" {
		return err
	}

	helpers.RenderRecord(out, rec)
	if opts.enrich && !rec.HasMetadata() {
		fmt.Fprintln(errOut, "Title and keywords unavailable; the prompt was recorded without them.")
	}
	if err != nil {
		return err
	}

	if opts.copyPrompt {
		return copyToClipboard(out, container.Clipboard, rec.PromptText)
	}
	return nil
}

// copyToClipboard copies text and reports the result
func copyToClipboard(out io.Writer, clip ports.Clipboard, text string) error {
	if clip == nil || !clip.Enabled() {
		return errors.New(ErrClipboardUnavailable)
	}
	if err := clip.Copy(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	fmt.Fprintln(out, MsgCopied)
	return nil
}
