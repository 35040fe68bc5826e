package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <name>",
	Short: "Show the registry profile of an organization",
	Long: `Lookup queries the configured registry sources, then the built-in local
registry, then the catalog itself, and prints the attribute set with the
derived enterprise nature and years established.

Example:
  orgresolve lookup 华为技术有限公司
  orgresolve lookup 小米 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cfg, err := newPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		ctx := cmd.Context()
		if cfg.Registry.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, 2*cfg.Registry.Timeout)
			defer cancel()
		}

		entry, err := p.Lookup(ctx, args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(entry)
		}
		printProfile(os.Stdout, entry)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")
}
