package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/orgresolve/internal/logging"
	"github.com/ppiankov/orgresolve/internal/server"
)

var checkInterval time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the resolver over HTTP",
	Long: `Serve starts the HTTP API:

  GET  /api/company-autocomplete?q=
  POST /api/intelligent-search          {"query": "...", "limit": 10}
  GET  /api/data-supplement-status?query=
  GET  /api/popular-companies
  GET  /api/company-info?name=
  POST /api/companies
  GET  /healthz
  GET  /metrics

The catalog lives in memory; entries added or synthesized while serving are
lost on exit.

Example:
  orgresolve serve --addr :8080
  ORGRESOLVE_SUPPLEMENT_WORKERS=4 orgresolve serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default from server.addr)")
	serveCmd.Flags().DurationVar(&checkInterval, "check-interval", 10*time.Minute, "keyword index consistency check interval (0 disables)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	p, cfg, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "✓ Catalog loaded: %d entries\n", p.Index().Len())
	fmt.Fprintf(os.Stderr, "✓ Listening on %s\n", cfg.Server.Addr)

	srv := server.New(p, cfg.Server)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})
	if checkInterval > 0 {
		g.Go(func() error {
			checkIndexLoop(ctx, p.CheckIndex, checkInterval)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	logging.Info(context.Background(), "server stopped")
	return nil
}

// checkIndexLoop runs check every interval until ctx is done
func checkIndexLoop(ctx context.Context, check func(context.Context), interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check(ctx)
		}
	}
}
