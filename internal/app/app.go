// Package app wires configuration into the module, cache store and runner
// shared by the commands.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/essence/internal/config"
	"github.com/udisondev/essence/internal/db"
	"github.com/udisondev/essence/internal/metrics"
	"github.com/udisondev/essence/internal/module"
	"github.com/udisondev/essence/internal/simulation"
	"github.com/udisondev/essence/internal/stat"
)

// LoadModule loads the configured module in strict or lenient mode.
func LoadModule(cfg config.Essence) (*module.Module, error) {
	mode := stat.ModeStrict
	if !cfg.Strict {
		mode = stat.ModeLenient
	}
	m, err := module.Load(cfg.ModulePath, module.Options{Mode: mode})
	if err != nil {
		return nil, fmt.Errorf("loading module: %w", err)
	}
	return m, nil
}

// OpenStore opens the configured cache store. The returned func releases it.
func OpenStore(ctx context.Context, cfg config.Essence) (simulation.Store, func(), error) {
	switch cfg.Cache.Backend {
	case "postgres":
		dsn := cfg.Database.DSN()
		database, err := db.New(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx, dsn); err != nil {
			database.Close()
			return nil, nil, err
		}
		slog.Info("postgres cache store ready", "host", cfg.Database.Host, "db", cfg.Database.DBName)
		return db.NewSimCacheRepository(database.Pool()), database.Close, nil
	case "memory", "":
		return simulation.NewMemoryStore(cfg.Cache.Size, cfg.Cache.TTL), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// NewRunner builds a runner over m with the configured store, key mode and
// seed, recording into the prometheus collectors.
func NewRunner(ctx context.Context, cfg config.Essence, m *module.Module) (*simulation.Runner, func(), error) {
	mode, err := simulation.ParseKeyMode(cfg.Cache.KeyMode)
	if err != nil {
		return nil, nil, err
	}
	if mode == simulation.KeyLegacy {
		slog.Warn("legacy cache keys: every run re-simulates")
	}
	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache store: %w", err)
	}
	r := simulation.NewRunner(m, simulation.RunnerOptions{
		Store:    store,
		KeyMode:  mode,
		Seed:     cfg.Simulation.Seed,
		Recorder: metrics.Recorder{},
	})
	return r, closeStore, nil
}
