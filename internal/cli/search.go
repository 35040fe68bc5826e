package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	searchLimit int
	jsonOutput  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Rank catalog names for a query",
	Long: `Search ranks catalog names against a query using alias, exact,
keyword and fuzzy matching. The catalog is not modified.

Example:
  orgresolve search 阿里
  orgresolve search dongdian --limit 5
  orgresolve search 东电 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := newPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		results, err := p.Resolve(cmd.Context(), args[0], searchLimit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(results)
		}
		printMatches(os.Stdout, results)
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <partial>",
	Short: "Suggest catalog names for a partial query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := newPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		names := p.Suggest(args[0])
		if jsonOutput {
			return printJSON(names)
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	},
}

var popularLimit int

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List well-known organizations present in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := newPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		names := p.Popular(popularLimit)
		if jsonOutput {
			return printJSON(names)
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(popularCmd)

	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum results (0 uses catalog.default_limit)")
	popularCmd.Flags().IntVarP(&popularLimit, "limit", "n", 0, "maximum names (0 uses catalog.popular_limit)")
	for _, c := range []*cobra.Command{searchCmd, suggestCmd, popularCmd} {
		c.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")
	}
}
