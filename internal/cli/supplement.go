package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/orgresolve/internal/model"
)

var (
	forceSupplement   bool
	supplementTimeout time.Duration
)

var supplementCmd = &cobra.Command{
	Use:   "supplement <query>",
	Short: "Search and fill catalog gaps for a query",
	Long: `Supplement runs an intelligent search. When the specificity gate finds
the answer inadequate, placeholder entries are synthesized for the query,
the command waits for the task and prints the refreshed results.

Synthesized entries live in this process only. Use 'orgresolve serve' to
keep them across queries.

Example:
  orgresolve supplement 长鑫
  orgresolve supplement 维斯登光电 --force --timeout 30s`,
	Args: cobra.ExactArgs(1),
	RunE: runSupplement,
}

func init() {
	rootCmd.AddCommand(supplementCmd)

	supplementCmd.Flags().BoolVar(&forceSupplement, "force", false, "supplement even when the gate finds the results adequate")
	supplementCmd.Flags().DurationVar(&supplementTimeout, "timeout", 30*time.Second, "maximum time to wait for the task")
	supplementCmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")
}

func runSupplement(cmd *cobra.Command, args []string) error {
	query := args[0]
	p, cfg, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), supplementTimeout)
	defer cancel()

	res := p.IntelligentSearch(ctx, query, 0)
	fmt.Fprintf(os.Stderr, "%s\n", res.Message)
	for _, s := range res.Signals {
		fmt.Fprintf(os.Stderr, "  signal: %s (%s)\n", s.Type, s.Description)
	}

	if !res.SupplementTriggered && forceSupplement {
		task, err := p.TriggerSupplementation(ctx, query)
		if err != nil {
			return fmt.Errorf("trigger supplementation: %w", err)
		}
		res.SupplementTriggered = true
		res.EstimatedSeconds = task.EstimatedSeconds()
		res.TaskID = task.ID
	}

	if !res.SupplementTriggered {
		if jsonOutput {
			return printJSON(res)
		}
		printMatches(os.Stdout, res.Results)
		return nil
	}

	fmt.Fprintf(os.Stderr, "⚙️  Supplementing %q (task %s, about %ds)...\n", query, res.TaskID, res.EstimatedSeconds)
	if err := p.WaitSupplementation(ctx, query); err != nil {
		return fmt.Errorf("wait for supplementation: %w", err)
	}

	if task, ok := p.Task(query); ok && task.Error != "" {
		return fmt.Errorf("supplementation failed: %s", task.Error)
	}

	poll := p.PollSupplementation(query)
	fmt.Fprintf(os.Stderr, "✓ %s\n", poll.Message)

	results := p.Search(query, cfg.Catalog.DefaultLimit)
	if jsonOutput {
		return printJSON(struct {
			Poll    model.PollResult    `json:"poll"`
			Results []model.MatchResult `json:"results"`
		}{poll, results})
	}
	printMatches(os.Stdout, results)
	return nil
}
