package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ksa-evaluator/internal/config"
	"github.com/jonathan/ksa-evaluator/internal/db"
	"github.com/jonathan/ksa-evaluator/internal/observability"
	"github.com/jonathan/ksa-evaluator/internal/pipeline"
	"github.com/jonathan/ksa-evaluator/internal/server"
	"github.com/jonathan/ksa-evaluator/internal/server/ratelimit"
	"github.com/jonathan/ksa-evaluator/internal/store"
)

var (
	servePort       int
	serveConfigPath string
	serveDatabase   string
	serveMigrate    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for candidate evaluation, comparison and
the multi-stage interview workflow. Records are kept in PostgreSQL when DATABASE_URL is set and in
memory otherwise. Write routes require a bearer token when JWT_SECRET is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on (overrides PORT)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json (values can be overridden by env vars and flags)")
	serveCmd.Flags().StringVar(&serveDatabase, "db-url", "", "PostgreSQL connection URL (overrides DATABASE_URL)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "Create missing tables on startup")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = serveDatabase
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		repo    store.Repository
		ping    func(context.Context) error
		onClose func()
	)
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		if serveMigrate {
			if err := database.Migrate(ctx); err != nil {
				database.Close()
				return err
			}
		}
		repo, ping, onClose = database, database.Ping, database.Close
		logger.Info("using PostgreSQL storage")
	} else {
		repo = store.NewMemory()
		logger.Warn("DATABASE_URL not set, records are kept in memory and lost on exit")
	}

	opts := cfg.PipelineOptions()
	opts.Logger = logger.With(slog.String("component", "pipeline"))
	service, err := pipeline.NewService(repo, opts)
	if err != nil {
		if onClose != nil {
			onClose()
		}
		return err
	}

	jwtCfg, err := config.OptionalJWTConfig()
	if err != nil {
		if onClose != nil {
			onClose()
		}
		return err
	}
	if jwtCfg == nil {
		logger.Warn("JWT_SECRET not set, write routes are unauthenticated")
	}

	srv, err := server.New(server.Config{
		Addr:      cfg.Addr(),
		Service:   service,
		Logger:    logger,
		JWT:       jwtCfg,
		RateLimit: ratelimit.LoadConfig(),
		Ping:      ping,
		OnClose:   onClose,
	})
	if err != nil {
		if onClose != nil {
			onClose()
		}
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
