// votelens serves the Manzanillo electoral-intelligence dashboard: an
// interactive choropleth of electoral sections with derived demographic
// profiles, a competitiveness semaphore and a natural-language SQL
// analyst over the sectional data.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"votelens/internal/agent"
	"votelens/internal/config"
	"votelens/internal/dataset"
	"votelens/internal/server"
	"votelens/internal/session"
)

var (
	verbose    bool
	configPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "votelens",
	Short: "Electoral intelligence dashboard for sectional data",
	Long: `votelens loads a processed geospatial dataset of electoral sections,
derives demographic profiles and a competitiveness index, and serves an
interactive dashboard with a map, per-section detail analysis and a
conversational SQL analyst backed by Gemini.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	loader := dataset.NewLoader(logger)
	gateway := buildGateway(cmd.Context(), cfg)

	var agentFor server.AgentProvider
	if gateway != nil {
		agentFor = func(t *dataset.Table) (session.Answerer, error) {
			return gateway.For(t)
		}
	}

	srv := server.New(cfg.DataPath, loader, agentFor, logger)

	// Warm the dataset and start the staleness watcher. A load failure
	// here is not fatal: endpoints degrade to "no data" and a corrected
	// file is picked up on a later request.
	if table, err := loader.Load(cfg.DataPath); err == nil {
		if w, werr := dataset.Watch(table, logger); werr != nil {
			logger.Warn("dataset watcher unavailable", zap.Error(werr))
		} else {
			defer w.Close()
		}
	}

	logger.Info("server listening",
		zap.String("addr", cfg.ListenAddr),
		zap.String("data", cfg.DataPath))
	return http.ListenAndServe(cfg.ListenAddr, srv.Router())
}

// buildGateway constructs the agent gateway, or returns nil when the
// provider handshake fails so the chat degrades without blocking startup.
func buildGateway(ctx context.Context, cfg config.Config) *agent.Gateway {
	if cfg.GeminiAPIKey == "" {
		logger.Warn("no Gemini API key configured; chat analyst disabled")
		return nil
	}
	llm, err := agent.NewGeminiLLM(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Warn("agent initialization failed; chat analyst disabled", zap.Error(err))
		return nil
	}
	return agent.NewGateway(llm, cfg.AgentDBPath, logger)
}

func main() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "votelens.yaml", "path to config file")
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
