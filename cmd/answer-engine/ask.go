// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pdiddy/answer-engine/internal/synth"
	"github.com/pdiddy/answer-engine/pkg/types"
)

var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Answer a question with cited web sources",
	Long: `Ask searches the web for the query, ranks the results by source quality, and
streams a synthesized answer that cites results by index. The cited sources,
suggested follow-up questions, and the full result list are printed after
the answer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntP("results", "r", 0, "number of search results to fetch")
	askCmd.Flags().StringP("model", "m", "", "generation model to use")
	askCmd.Flags().Bool("no-cache", false, "bypass the search and answer cache")

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	cfg := loadConfig()
	if n, _ := cmd.Flags().GetInt("results"); n > 0 {
		cfg.Search.MaxResults = n
	}
	if m, _ := cmd.Flags().GetString("model"); m != "" {
		cfg.AI.Model = m
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

	color.New(color.FgCyan, color.Bold).Print("Query: ")
	fmt.Println(query)

	results, err := st.provider.Search(ctx, query, cfg.Search.MaxResults)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		color.Yellow("No search results found. Unable to generate an answer.")
		return nil
	}
	ranked := synth.Rank(results)

	color.New(color.FgGreen, color.Bold).Println("\nAnswer:")
	out := make(chan string)
	done := make(chan synth.Answer, 1)
	go func() {
		done <- st.synth.Synthesize(ctx, query, ranked, out)
	}()
	for fragment := range out {
		fmt.Print(fragment)
	}
	answer := <-done
	fmt.Println()
	if answer.FromCache {
		color.New(color.Faint).Println("(served from cache)")
	}

	if len(answer.Citations) > 0 {
		color.New(color.FgYellow, color.Bold).Println("\nSources Used:")
		for _, idx := range answer.Citations {
			for _, r := range ranked {
				if r.Index == idx {
					fmt.Printf("[%d] %s - %s\n    %s\n", idx, r.Title, r.Source, r.Link)
				}
			}
		}
	}

	followups := st.synth.FollowUpQuestions(ctx, query, ranked)
	if len(followups) > 0 {
		color.New(color.FgYellow, color.Bold).Println("\nFollow-up Questions:")
		for _, q := range followups {
			fmt.Printf("- %s\n", q)
		}
	}

	color.New(color.FgBlue, color.Bold).Println("\nAll Search Results:")
	printResultsTable(os.Stdout, ranked)
	return nil
}

func printResultsTable(w io.Writer, results []types.SearchResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTITLE\tSOURCE\tSCORE\tSNIPPET")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\n",
			r.Index, truncate(r.Title, 50), r.Source, r.QualityScore, truncate(r.Snippet, 80))
	}
	tw.Flush()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
