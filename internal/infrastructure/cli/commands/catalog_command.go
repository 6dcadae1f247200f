package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/texturepro/internal/app"
	"github.com/doeshing/texturepro/internal/domain"
)

// NewCatalogCommand creates the catalog command
func NewCatalogCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [material|primary|secondary|lighting]",
		Short: "List the allowed values for each parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogs := container.Catalogs
			if catalogs.Materials == nil {
				catalogs = domain.DefaultCatalogs()
			}
			if len(args) == 0 {
				for _, key := range domain.ParameterKeys {
					displayCatalog(cmd.OutOrStdout(), catalogs, key)
				}
				return nil
			}
			key, err := domain.ParseParameterKey(args[0])
			if err != nil {
				return err
			}
			displayCatalog(cmd.OutOrStdout(), catalogs, key)
			return nil
		},
	}
}

// displayCatalog prints the numbered options for key
func displayCatalog(out io.Writer, catalogs domain.Catalogs, key domain.ParameterKey) {
	options := catalogs.For(key)
	fmt.Fprintf(out, "%s (%s, %d options)\n", key.Label(), key, len(options))
	for i, option := range options {
		fmt.Fprintf(out, "  %2d. %s\n", i+1, option)
	}
}
