// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pdiddy/answer-engine/internal/cache"
	"github.com/pdiddy/answer-engine/pkg/types"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the response cache",
	Long: `Cache prints entry counts for the search and answer cache. With --clear,
every entry is evicted.`,
	RunE: runCache,
}

func init() {
	cacheCmd.Flags().Bool("clear", false, "evict every cache entry")

	rootCmd.AddCommand(cacheCmd)
}

func runCache(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, err := cache.Open(cfg.Cache)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer store.Close()

	if clear, _ := cmd.Flags().GetBool("clear"); clear {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		color.Green("Cache cleared")
		return nil
	}

	total, byType, err := store.Stats()
	if err != nil {
		return fmt.Errorf("reading cache stats: %w", err)
	}

	fmt.Printf("Cache directory: %s\n", cfg.Cache.Dir)
	fmt.Printf("Entries: %d\n", total)
	fmt.Printf("  search:      %d\n", byType[types.CacheSearch])
	fmt.Printf("  ai_response: %d\n", byType[types.CacheAIResponse])
	fmt.Printf("TTL: %s\n", cfg.Cache.TTL)
	return nil
}
