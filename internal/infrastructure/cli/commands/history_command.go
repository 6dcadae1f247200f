package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/texturepro/internal/app"
	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/infrastructure/cli/helpers"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect generated and custom prompt history",
	}

	historyCmd.PersistentFlags().Bool("custom", false, "Use the custom prompt history")

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryClearCommand(container),
		newHistoryCopyCommand(container),
		newHistoryExportCommand(container),
		newHistoryStatsCommand(container),
	)

	return historyCmd
}

func useCustom(cmd *cobra.Command) bool {
	custom, _ := cmd.Flags().GetBool("custom")
	return custom
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recent history entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.Context(), cmd.OutOrStdout(), container, useCustom(cmd))
		},
	}
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !yes && !helpers.PromptForConfirmation(cmd.InOrStdin(), out, "Clear all history entries?") {
				fmt.Fprintln(out, MsgClearCancelled)
				return nil
			}
			return clearHistory(cmd.Context(), out, container, useCustom(cmd))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// newHistoryCopyCommand creates the 'history copy' subcommand
func newHistoryCopyCommand(container *app.Container) *cobra.Command {
	var keywords bool

	cmd := &cobra.Command{
		Use:   "copy <n>",
		Short: "Copy the prompt of entry n (1 is the newest) to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid entry number %q", args[0])
			}
			text, err := historyText(cmd.Context(), container, useCustom(cmd), index, keywords)
			if err != nil {
				return err
			}
			return copyToClipboard(cmd.OutOrStdout(), container.Clipboard, text)
		},
	}

	cmd.Flags().BoolVarP(&keywords, "keywords", "k", false, "Copy the keywords instead of the prompt")
	return cmd
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportHistory(cmd.Context(), cmd.OutOrStdout(), container, useCustom(cmd), args[0])
		},
	}
}

// newHistoryStatsCommand creates the 'history stats' subcommand
func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the most used and still unused values per parameter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistoryStats(cmd.Context(), cmd.OutOrStdout(), container, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryStatsLimit, "Values shown per parameter")
	return cmd
}

// listHistoryEntries lists recent history entries
func listHistoryEntries(ctx context.Context, out io.Writer, container *app.Container, custom bool) error {
	if custom {
		if container.CustomService == nil {
			return errors.New(ErrCustomServiceUnavailable)
		}
		log, err := container.CustomService.History(ctx)
		if err != nil {
			return fmt.Errorf("failed to load custom history: %w", err)
		}
		if len(log) == 0 {
			fmt.Fprintln(out, MsgNoHistoryRecorded)
			return nil
		}
		helpers.RenderCustomHistory(out, log)
		return nil
	}

	if container.GenerateService == nil {
		return errors.New(ErrGenerateServiceUnavailable)
	}
	log, err := container.GenerateService.History(ctx)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(log) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}
	helpers.RenderHistory(out, log)
	return nil
}

// clearHistory clears the selected history
func clearHistory(ctx context.Context, out io.Writer, container *app.Container, custom bool) error {
	var err error
	switch {
	case custom && container.CustomService != nil:
		err = container.CustomService.ClearHistory(ctx)
	case !custom && container.GenerateService != nil:
		err = container.GenerateService.ClearHistory(ctx)
	default:
		return errors.New(ErrGenerateServiceUnavailable)
	}
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	fmt.Fprintln(out, MsgHistoryCleared)
	return nil
}

// historyText returns the prompt or keywords of the entry at the 1-based index
func historyText(ctx context.Context, container *app.Container, custom bool, index int, keywords bool) (string, error) {
	var (
		prompt string
		words  []string
		size   int
	)

	if custom {
		if container.CustomService == nil {
			return "", errors.New(ErrCustomServiceUnavailable)
		}
		log, err := container.CustomService.History(ctx)
		if err != nil {
			return "", err
		}
		size = len(log)
		if index >= 1 && index <= size {
			prompt, words = log[index-1].PromptText, log[index-1].Keywords
		}
	} else {
		if container.GenerateService == nil {
			return "", errors.New(ErrGenerateServiceUnavailable)
		}
		log, err := container.GenerateService.History(ctx)
		if err != nil {
			return "", err
		}
		size = len(log)
		if index >= 1 && index <= size {
			prompt, words = log[index-1].PromptText, log[index-1].Keywords
		}
	}

	if index < 1 || index > size {
		return "", fmt.Errorf("entry %d out of range (history has %d entries)", index, size)
	}
	if keywords {
		if len(words) == 0 {
			return "", fmt.Errorf("entry %d has no keywords", index)
		}
		return strings.Join(words, ", "), nil
	}
	return prompt, nil
}

// exportHistory writes the selected history as a JSON array
func exportHistory(ctx context.Context, out io.Writer, container *app.Container, custom bool, path string) error {
	var (
		payload any
		count   int
	)

	if custom {
		if container.CustomService == nil {
			return errors.New(ErrCustomServiceUnavailable)
		}
		log, err := container.CustomService.History(ctx)
		if err != nil {
			return err
		}
		if log == nil {
			log = domain.CustomLog{}
		}
		payload, count = log, len(log)
	} else {
		if container.GenerateService == nil {
			return errors.New(ErrGenerateServiceUnavailable)
		}
		log, err := container.GenerateService.History(ctx)
		if err != nil {
			return err
		}
		if log == nil {
			log = domain.HistoryLog{}
		}
		payload, count = log, len(log)
	}

	if err := helpers.WriteJSON(path, payload); err != nil {
		return fmt.Errorf("failed to export history to %s: %w", path, err)
	}
	fmt.Fprintf(out, "Exported %d entries to %s\n", count, path)
	return nil
}

// showHistoryStats displays per-parameter value frequencies
func showHistoryStats(ctx context.Context, out io.Writer, container *app.Container, limit int) error {
	if container.GenerateService == nil {
		return errors.New(ErrGenerateServiceUnavailable)
	}
	log, err := container.GenerateService.History(ctx)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(log) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	fmt.Fprintf(out, "Entries analyzed: %d\n", len(log))
	for _, key := range domain.ParameterKeys {
		fmt.Fprintf(out, "%s:\n", key.Label())
		for _, stat := range helpers.CalculateTopValues(log, key, limit) {
			fmt.Fprintf(out, "  %s (%d)\n", stat.Value, stat.Count)
		}
		unused := helpers.UnusedValues(log, container.Catalogs, key)
		fmt.Fprintf(out, "  not used recently: %d of %d\n", len(unused), len(container.Catalogs.For(key)))
	}
	return nil
}
