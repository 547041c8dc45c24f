package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/KalebGordon/Rivoney/internal/config"
	"github.com/KalebGordon/Rivoney/internal/gaps"
	"github.com/KalebGordon/Rivoney/internal/llm"
	"github.com/KalebGordon/Rivoney/internal/ops"
	"github.com/KalebGordon/Rivoney/internal/server"
	"github.com/KalebGordon/Rivoney/internal/store"
	"github.com/KalebGordon/Rivoney/internal/tailor"
)

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the resume store, gap analysis, and generation endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if serveConfig != "" {
		fileCfg, err := config.LoadConfig(serveConfig)
		if err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	var st store.Store
	if cfg.DatabaseURL != "" {
		pg, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pg.Close()
		if err := pg.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		st = pg
	} else {
		log.Println("DATABASE_URL not set, using in-memory store")
		st = store.NewMemory()
	}

	var gapOracle gaps.Oracle
	var opsOracle ops.Oracle
	if cfg.APIKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer client.Close()
		gapOracle = llm.NewGapOracle(client)
		opsOracle = llm.NewOpsOracle(client)
	} else {
		log.Println("GEMINI_API_KEY not set, gap analysis disabled and generation runs on heuristics")
	}

	svc := tailor.New(st, gaps.NewAnalyzer(gapOracle, cfg.MaxQuestions), ops.NewSynthesizer(opsOracle))
	srv := server.New(server.Config{Port: cfg.Port, Verbose: cfg.Verbose}, svc)
	return srv.Start()
}
