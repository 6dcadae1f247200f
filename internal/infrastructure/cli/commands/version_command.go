package commands

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/doeshing/texturepro/internal/version"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	var short, asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show texturepro version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			switch {
			case asJSON:
				return writeVersionJSON(cmd.OutOrStdout(), info)
			case short:
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return nil
			default:
				renderVersion(cmd.OutOrStdout(), info)
				return nil
			}
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print build metadata as JSON")
	cmd.MarkFlagsMutuallyExclusive("short", "json")
	return cmd
}

func renderVersion(out io.Writer, info version.Info) {
	line := "texturepro " + info.Version
	if commit := info.ShortCommit(); commit != "" {
		line += " (" + commit + ")"
	}
	fmt.Fprintln(out, line)
	if info.BuildDate != "" {
		fmt.Fprintf(out, "Built:    %s\n", info.BuildDate)
	}
	fmt.Fprintf(out, "Go:       %s\n", info.GoVersion)
	fmt.Fprintf(out, "Platform: %s\n", info.Platform)
}

func writeVersionJSON(out io.Writer, info version.Info) error {
	raw, err := sonic.ConfigStd.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(raw))
	return err
}
