package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cognicore/sentitag/pkg/sentitag"
	"github.com/cognicore/sentitag/pkg/sentitag/clean"
	"github.com/cognicore/sentitag/pkg/sentitag/config"
	"github.com/cognicore/sentitag/pkg/sentitag/corpus"
	"github.com/cognicore/sentitag/pkg/sentitag/store"
	"github.com/cognicore/sentitag/pkg/sentitag/store/sqlite"
	"github.com/cognicore/sentitag/pkg/sentitag/tagger"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		cfgPath  = flag.String("config", "", "YAML configuration file (optional, compiled-in defaults otherwise)")
		envPath  = flag.String("env", "", "Path to .env file (default: ./.env if present)")
		root     = flag.String("root", "", "Corpus root directory (overrides config and "+config.CorpusRootEnv+")")
		dbPath   = flag.String("db", "", "SQLite database for run reports (overrides store_path)")
		failFast = flag.Bool("fail-fast", false, "Stop at the first file that fails")
	)
	flag.Parse()

	loader := config.Loader{ConfigPath: *cfgPath, EnvPath: *envPath}
	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	applyFlags(cfg, *root, *dbPath, *failFast)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx := context.Background()
	start := time.Now()

	st, err := openStore(ctx, cfg.StorePath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	if st != nil {
		defer st.Close()
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)

	logger.Printf("Loading tagger model...")
	tg := tagger.NewProse()

	driver, err := buildDriver(cfg, tg, st, logger)
	if err != nil {
		logger.Printf("build driver: %v", err)
		return 1
	}

	summary, err := driver.Run(ctx)
	logger.Printf("Finished in %s", time.Since(start).Round(time.Millisecond))
	if err != nil {
		logger.Printf("run %s: %v", summary.RunID, err)
		return 1
	}
	if summary.Failed > 0 {
		return 1
	}
	return 0
}

// applyFlags lets command-line flags override the loaded configuration.
func applyFlags(cfg *config.Config, root, dbPath string, failFast bool) {
	if root != "" {
		cfg.CorpusRoot = config.ExpandHome(root)
	}
	if dbPath != "" {
		cfg.StorePath = dbPath
	}
	if failFast {
		cfg.ContinueOnError = false
	}
}

// buildDriver wires the cleaner, the aggregator and the store into a Driver.
func buildDriver(cfg *config.Config, tg tagger.Tagger, st store.Store, logger *log.Logger) (*sentitag.Driver, error) {
	agg, err := corpus.New(corpus.Options{
		Tagger:         tg,
		Cleaner:        clean.New(cfg.PairSeparator, cfg.TokenSeparator),
		PairSeparator:  cfg.PairSeparator,
		TokenSeparator: cfg.TokenSeparator,
		ProgressEvery:  cfg.ProgressEvery,
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build aggregator: %w", err)
	}

	return sentitag.New(sentitag.Options{
		Config:    cfg,
		Processor: agg,
		Store:     st,
		Logger:    logger,
	})
}

// openStore opens the report database, or returns nil when none is configured.
func openStore(ctx context.Context, path string) (store.Store, error) {
	if path == "" {
		return nil, nil
	}
	return sqlite.OpenSQLite(ctx, path)
}
