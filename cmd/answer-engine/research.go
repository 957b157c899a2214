// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/answer-engine/internal/agent"
	"github.com/pdiddy/answer-engine/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research <query>",
	Short: "Run a depth-bounded autonomous research session",
	Long: `Research expands an analytical question over multiple rounds. Each round
searches, synthesizes an answer, derives follow-up queries, and searches
those in parallel for additional context. Rounds continue while the agent
signals there is more to expand, up to the configured depth limit. Later
rounds follow the first unexplored follow-up query.

With --out, the full session transcript is written as YAML.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().Int("depth", 0, "maximum research depth")
	researchCmd.Flags().String("out", "", "write the session transcript to a YAML file")
	researchCmd.Flags().Bool("no-cache", false, "bypass the search and answer cache")

	rootCmd.AddCommand(researchCmd)
}

// transcript is the YAML shape written by --out.
type transcript struct {
	Session types.ResearchContext   `yaml:"session"`
	Rounds  []types.ResearchOutcome `yaml:"rounds"`
}

func runResearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	cfg := loadConfig()
	if d, _ := cmd.Flags().GetInt("depth"); d > 0 {
		cfg.Research.MaxDepth = d
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Disabled = true
	}

	st, err := newStack(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	ag := agent.New(st.provider, st.synth, cfg.Search, cfg.Research, os.Stderr)

	color.New(color.FgCyan, color.Bold).Print("Researching: ")
	fmt.Println(query)

	var rounds []types.ResearchOutcome
	for depth := 0; ; depth++ {
		outcome, err := ag.Research(ctx, query, depth)
		if err != nil {
			return err
		}
		rounds = append(rounds, outcome)
		printRound(outcome)

		if outcome.Complete || !outcome.ShouldContinue {
			break
		}
		// Follow the first unexplored thread; nothing left means the
		// session has converged.
		if len(outcome.FollowupQueries) == 0 {
			break
		}
		query = outcome.FollowupQueries[0]
	}

	session := ag.Session()
	if len(session.History) > 0 {
		color.New(color.FgGreen, color.Bold).Println("\nSynthesized Answers:")
		for _, round := range session.History {
			color.New(color.Bold).Printf("\n%s\n", round.Query)
			fmt.Println(round.Response)
		}
	}

	if path, _ := cmd.Flags().GetString("out"); path != "" {
		data, err := yaml.Marshal(transcript{Session: session, Rounds: rounds})
		if err != nil {
			return fmt.Errorf("encoding transcript: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing transcript: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Transcript written to %s\n", path)
	}
	return nil
}

func printRound(outcome types.ResearchOutcome) {
	color.New(color.FgBlue, color.Bold).Printf("\nRound %d\n", outcome.Depth+1)

	if outcome.Complete {
		fmt.Printf("Complete: %s\n", outcome.Reason)
		if len(outcome.Results) > 0 {
			printResultsTable(os.Stdout, outcome.Results)
		}
		return
	}

	if len(outcome.FollowupQueries) > 0 {
		fmt.Println("Follow-up queries:")
		for _, q := range outcome.FollowupQueries {
			fmt.Printf("- %s\n", q)
		}
	}
	fmt.Printf("Gathered %d additional results\n", len(outcome.AdditionalContext))
}
