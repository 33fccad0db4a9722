package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/docwriter/internal/config"
	"github.com/jonathan/docwriter/internal/enhance"
	"github.com/jonathan/docwriter/internal/export"
	"github.com/jonathan/docwriter/internal/report"
	"github.com/jonathan/docwriter/internal/server"
	"github.com/jonathan/docwriter/internal/session"
	"github.com/jonathan/docwriter/internal/template"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for generating, editing, and exporting reports.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides configuration)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger := zap.L()
	defer func() { _ = logger.Sync() }()

	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	templates, err := template.NewStore(cfg.Server.TemplateDir)
	if err != nil {
		return fmt.Errorf("failed to open template store: %w", err)
	}

	var enhancer *enhance.Enhancer
	var generationEnhancer report.Enhancer
	if cfg.Gemini.APIKey != "" {
		capability, err := enhance.NewGeminiCapability(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return fmt.Errorf("failed to create text generation client: %w", err)
		}
		defer func() { _ = capability.Close() }()

		enhancer = enhance.NewEnhancer(capability, cfg.Enhance.Timeout(), logger)
		generationEnhancer = enhancer
		logger.Info("AI enhancement enabled", zap.String("model", cfg.Gemini.Model))
	} else {
		logger.Info("AI enhancement disabled, sections use synthesized content")
	}

	sessions, err := newSessionStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{Port: cfg.Server.Port}, server.Deps{
		Templates: templates,
		Assembler: report.NewAssembler(generationEnhancer, logger),
		Exporter:  export.NewExporter(cfg.Export.ChromeTimeout(), cfg.Export.DefaultLogoPath, logger),
		Enhancer:  enhancer,
		Sessions:  sessions,
		Logger:    logger,
	})
	return srv.Start(ctx)
}

func newSessionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.Store, error) {
	if cfg.Store.Backend != "redis" {
		return session.NewMemoryStore(), nil
	}

	client := session.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	store := session.NewRedisStore(client, cfg.Redis.TTL())
	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Address, err)
	}
	logger.Info("using redis session store", zap.String("address", cfg.Redis.Address))
	return store, nil
}
