package cli

import (
	"time"

	"cvoptimera/internal/config"
	"cvoptimera/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for resume optimization, parsing and job extraction",
	Long: `Start an HTTP server that provides REST API endpoints for resume optimization,
resume parsing and job content extraction.

Available endpoints:
- POST /optimize: Optimize a resume for a job description
- POST /parse: Parse free-text resume content into structured data
- POST /extract: Extract job posting content from a URL
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")

	// Bind flags to viper config keys
	bindFlag := func(key, flagName string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(flagName)); err != nil {
			panic(err)
		}
	}

	bindFlag("server.port", "port")
	bindFlag("server.host", "host")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Hot-reload prompt files while the server runs
	if watcher := config.NewPromptWatcher(cfg, time.Second, logger); watcher != nil {
		if err := watcher.Start(); err != nil {
			logger.Warn("Failed to start prompt watcher", "error", err.Error())
		} else {
			defer func() {
				if err := watcher.Stop(); err != nil {
					logger.Warn("Failed to stop prompt watcher", "error", err.Error())
				}
			}()
		}
	}

	serverCfg := server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		APIKeys:        cfg.Server.APIKeys,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: int64(cfg.App.MaxFileSize),
		RateLimit:      &cfg.Server.RateLimit,
	}
	return server.NewServer(cfg, serverCfg, logger).Start()
}
