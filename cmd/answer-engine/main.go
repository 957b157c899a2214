// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the answer-engine CLI, an AI-powered
// search tool that answers questions with cited web sources.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/answer-engine/internal/httputil"
	"github.com/pdiddy/answer-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the answer-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "answer-engine",
	Short: "AI-powered search with citations",
	Long: `answer-engine searches the web and synthesizes a streamed, citation-annotated
answer from the results. Answers cite their sources by index, follow-up
questions are suggested, and both search results and answers are cached.

The ask command answers a single question; research runs a depth-bounded
autonomous session that expands analytical questions into follow-up rounds.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Missing .env is the normal case, not an error.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./answer-engine.yaml or ~/.config/answer-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("answer-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "answer-engine"))
		}
	}

	viper.SetEnvPrefix("ANSWER_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	httputil.Diagnostics = os.Stderr

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
