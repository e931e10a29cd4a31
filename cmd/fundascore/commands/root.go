package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantbr/fundascore/internal/batch"
	"github.com/quantbr/fundascore/internal/benchmark"
	"github.com/quantbr/fundascore/internal/comparator"
	"github.com/quantbr/fundascore/internal/quality"
	"github.com/quantbr/fundascore/internal/scoring"
	"github.com/quantbr/fundascore/pkg/cache"
	"github.com/quantbr/fundascore/pkg/config"
	"github.com/quantbr/fundascore/pkg/logger"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fundascore",
	Short: "Sector-aware fundamental scoring for B3 equities",
	Long: `fundascore scores companies on five fundamental categories against
their sector's benchmark medians and ranks them inside each sector.

Usage:
  fundascore score --input batch.json
  fundascore sectors --input batch.json
  fundascore benchmarks`,
}

// Execute runs the CLI. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// app bundles the wired pipeline for the commands.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	registry *benchmark.Registry
	runner   *batch.Runner
}

// buildApp loads config and wires the full pipeline. Every command
// goes through here so the wiring exists in one place.
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.New(cfg)

	registry, err := benchmark.Load(log)
	if err != nil {
		return nil, err
	}

	engine, err := scoring.NewEngine(scoring.WeightsFromConfig(cfg.Scoring), registry, log)
	if err != nil {
		return nil, err
	}
	classifier := quality.NewClassifier(registry, log)

	var store cache.Store
	if cfg.Cache.Backend == "redis" {
		redisStore, err := cache.NewRedisStore(cfg.Redis, "fundascore:comparator", log)
		if err != nil {
			return nil, fmt.Errorf("redis cache backend: %w", err)
		}
		store = redisStore
	} else {
		store = cache.NewMemoryStore()
	}
	comp := comparator.New(cfg.Comparator, store, cfg.Cache.TTL, log)

	return &app{
		cfg:      cfg,
		log:      log,
		registry: registry,
		runner:   batch.NewRunner(engine, classifier, comp, cfg.Scoring.BatchConcurrency, log),
	}, nil
}
