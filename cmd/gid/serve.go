package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/Lzww0608/gid"
	"github.com/Lzww0608/gid/internal/logging"
	"github.com/Lzww0608/gid/internal/metrics"
	"github.com/Lzww0608/gid/internal/server"
	"github.com/Lzww0608/gid/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the identifier HTTP API",
	Long: `Start the identifier HTTP API.

Routes:
  POST /v1/ids?kind=time|random&count=N   generate identifiers
  GET  /v1/ids/{text}?format=...          decode and render
  GET  /v1/ids/{text}/encode?format=...   re-encode
  GET  /v1/registry[/{text}]              registered identifiers (store.driver set)
  GET  /healthz

Environment variables:
  GID_SERVER_ADDR      - Listen address (default: :8080)
  GID_LOG_LEVEL        - Log level: debug, info, warn, error
  GID_STORE_DRIVER     - Registry driver: sqlite3 or mysql
  GID_STORE_DSN        - Registry DSN
  GID_METRICS_ENABLED  - Expose Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Logging, os.Stdout)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := server.Options{
		Config:    cfg,
		Generator: gid.NewGenerator(),
		Random:    gid.NewRandomGenerator(),
		Metrics:   metrics.New(promReg),
		Gatherer:  promReg,
		Logger:    logger,
	}

	if cfg.Store.Enabled() {
		reg, err := store.Open(ctx, cfg.Store, logger)
		if err != nil {
			return err
		}
		defer reg.Close()
		opts.Registry = reg
	}

	return server.New(opts).Run(ctx)
}
