package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/texturepro/internal/app"
	"github.com/doeshing/texturepro/internal/infrastructure/cli/helpers"
)

// NewCacheCommand creates the cache command with all subcommands
func NewCacheCommand(container *app.Container) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the title and keyword cache",
	}

	cacheCmd.AddCommand(
		newCacheListCommand(container),
		newCacheClearCommand(container),
		newCacheStatsCommand(container),
	)

	return cacheCmd
}

// newCacheListCommand creates the 'cache list' subcommand
func newCacheListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cache entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCacheEntries(cmd.OutOrStdout(), container)
		},
	}
}

// newCacheClearCommand creates the 'cache clear' subcommand
func newCacheClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return clearCache(cmd.OutOrStdout(), container)
		},
	}
}

// newCacheStatsCommand creates the 'cache stats' subcommand
func newCacheStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache settings, entry count and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCacheStats(cmd.OutOrStdout(), container)
		},
	}
}

// listCacheEntries lists all cache entries
func listCacheEntries(out io.Writer, container *app.Container) error {
	if container.CacheStore == nil {
		return errors.New(ErrCacheStoreUnavailable)
	}

	entries, err := container.CacheStore.Entries()
	if err != nil {
		return fmt.Errorf("failed to retrieve cache entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoCachedMetadata)
		return nil
	}

	helpers.RenderCacheEntries(out, entries)
	return nil
}

// clearCache clears the cache directory
func clearCache(out io.Writer, container *app.Container) error {
	if container.CacheStore == nil {
		return errors.New(ErrCacheStoreUnavailable)
	}

	if err := container.CacheStore.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	fmt.Fprintln(out, MsgCacheCleared)
	return nil
}

// showCacheStats displays cache settings and usage
func showCacheStats(out io.Writer, container *app.Container) error {
	cache := container.CacheStore
	if cache == nil {
		return errors.New(ErrCacheStoreUnavailable)
	}

	entries, err := cache.Entries()
	if err != nil {
		return fmt.Errorf("failed to retrieve cache entries: %w", err)
	}

	dir := cache.Dir()
	totalSize, err := calculateDirectorySize(dir)
	if err != nil {
		return fmt.Errorf("failed to calculate cache size: %w", err)
	}

	cfg := container.Config
	fmt.Fprintf(out, "Cache directory: %s\nCache TTL: %s\nMax entries: %d\nCurrent entries: %d\nSize: %s\n",
		dir,
		cfg.GetCacheTTL(),
		cfg.GetCacheMaxEntries(),
		len(entries),
		humanize.Bytes(uint64(totalSize)))

	return nil
}

// calculateDirectorySize calculates the total size of a directory
func calculateDirectorySize(dirPath string) (int64, error) {
	var totalSize int64

	err := filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip files that can't be accessed
		}

		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil // Skip files that can't be stat'd
		}

		totalSize += info.Size()
		return nil
	})

	if err != nil {
		return 0, err
	}

	return totalSize, nil
}
