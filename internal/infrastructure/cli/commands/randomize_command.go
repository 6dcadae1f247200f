package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/texturepro/internal/app"
	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/infrastructure/cli/helpers"
)

// NewRandomizeCommand creates the randomize command
func NewRandomizeCommand(container *app.Container) *cobra.Command {
	var (
		field   string
		current domain.PartialParameters
	)

	cmd := &cobra.Command{
		Use:   "randomize",
		Short: "Suggest a harmonious parameter combination",
		Long: "Ask the configured model for all four parameters, avoiding recent history and the\n" +
			"values given as flags. With --field only that parameter is re-rolled locally.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRandomize(cmd.Context(), cmd.OutOrStdout(), container, field, current)
		},
	}

	cmd.Flags().StringVarP(&field, "field", "f", "", "Only randomize this parameter (material|primary|secondary|lighting)")
	addParameterFlags(cmd, &current)
	return cmd
}

// runRandomize prints a randomized field or a full combination
func runRandomize(ctx context.Context, out io.Writer, container *app.Container, field string, raw domain.PartialParameters) error {
	svc := container.GenerateService
	if svc == nil {
		return errors.New(ErrGenerateServiceUnavailable)
	}

	current, err := helpers.ResolveParameters(container.Catalogs, raw)
	if err != nil {
		return err
	}

	if field != "" {
		key, err := domain.ParseParameterKey(field)
		if err != nil {
			return err
		}
		value, err := svc.RandomizeField(ctx, key, current.Get(key))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %s\n", key.Label(), value)
		return nil
	}

	result, err := svc.RandomizeAll(ctx, current)
	if err != nil {
		return err
	}
	helpers.RenderRandomization(out, result)
	return nil
}
