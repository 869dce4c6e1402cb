// Package main provides the qpi CLI entry point.
package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/zanachka/quickpin-api/pkg/logging"
	"github.com/zanachka/quickpin-api/pkg/metrics"
)

// Version is set at build time via ldflags
var Version = "dev"

// Persistent flags shared by all verbs.
var (
	flagURL         string
	flagToken       string
	flagInsecure    bool
	flagLogLevel    string
	flagLogPretty   bool
	flagMetricsAddr string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "qpi",
	Short: "Command line client for the QuickPin API",
	Long: `qpi submits social-media profiles to a QuickPin deployment and
queries its search endpoint.

Profiles are read one identifier per line and submitted in chunks at a
fixed interval. Set QUICKPIN_URL and QUICKPIN_TOKEN (or QUICKPIN_USER and
QUICKPIN_PASSWORD) to avoid being prompted each time; a .env file in the
working directory is honored as well.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Flags beat env vars, env vars beat .env entries.
		_ = godotenv.Load()

		cfg := logging.DefaultConfig()
		cfg.Level = logging.LogLevel(flagLogLevel)
		cfg.Pretty = flagLogPretty
		logging.Setup(cfg)

		if flagMetricsAddr != "" {
			go serveMetrics(flagMetricsAddr)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "QuickPin base URL (default $QUICKPIN_URL)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "API token (default $QUICKPIN_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&flagInsecure, "insecure", true, "Skip TLS certificate verification")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagLogPretty, "log-pretty", true, "Human-readable log output")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during long runs")
	rootCmd.Version = Version
}

// serveMetrics exposes the client metrics for long submission runs.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Gatherer, promhttp.HandlerOpts{}))
	logger := logging.NewLogger("qpi")
	logger.Info().Str("addr", addr).Msg("Serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn().Err(err).Msg("Metrics listener stopped")
	}
}
