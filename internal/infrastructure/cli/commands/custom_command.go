package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/texturepro/internal/app"
	"github.com/doeshing/texturepro/internal/infrastructure/cli/helpers"
)

// NewCustomCommand creates the custom command
func NewCustomCommand(container *app.Container) *cobra.Command {
	var copyPrompt bool

	cmd := &cobra.Command{
		Use:   "custom [prompt text]",
		Short: "Generate a title and keywords for a free-text prompt",
		Long: "Generate a title and 49 keywords for a free-text prompt (up to 500 characters).\n" +
			"Without arguments the prompt is read from standard input.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), 64*1024))
				if err != nil {
					return fmt.Errorf("read prompt: %w", err)
				}
				text = string(data)
			}
			return runCustom(cmd.Context(), cmd.OutOrStdout(), container, text, copyPrompt)
		},
	}

	cmd.Flags().BoolVarP(&copyPrompt, "copy", "c", false, "Copy the keywords to the clipboard")
	return cmd
}

// runCustom requests metadata for text and renders the stored record
func runCustom(ctx context.Context, out io.Writer, container *app.Container, text string, copyKeywords bool) error {
	svc := container.CustomService
	if svc == nil {
		return errors.New(ErrCustomServiceUnavailable)
	}

	var spinner *helpers.Spinner
	if helpers.IsTerminal(os.Stderr) {
		spinner = helpers.NewSpinner(os.Stderr, "Requesting title and keywords")
		spinner.Start()
	}
	rec, err := svc.Generate(ctx, text)
	if spinner != nil {
		spinner.Stop()
	}
	if rec.ID == "" {
		return err
	}

	helpers.RenderCustomRecord(out, rec)
	if err != nil {
		return err
	}
	if copyKeywords {
		return copyToClipboard(out, container.Clipboard, strings.Join(rec.Keywords, ", "))
	}
	return nil
}
