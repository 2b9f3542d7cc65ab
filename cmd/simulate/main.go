package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/essence/internal/app"
	"github.com/udisondev/essence/internal/config"
	"github.com/udisondev/essence/internal/export"
	"github.com/udisondev/essence/internal/server"
	"github.com/udisondev/essence/internal/simulation"
)

const ConfigPath = "config/essence.yaml"

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", ConfigPath, "path to the YAML config")
	only := flag.String("only", "", "comma separated search config ids to run")
	serve := flag.Bool("serve", false, "keep the HTTP server running after the search")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, *configPath, *only, *serve); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath, only string, serve bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if p := os.Getenv("ESSENCE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(cfg.NewLogger())
	slog.Info("config loaded", "path", cfgPath, "cache", cfg.Cache.Backend, "key_mode", cfg.Cache.KeyMode)

	m, err := app.LoadModule(cfg)
	if err != nil {
		return err
	}
	searches, err := simulation.LoadConfigs(cfg.SearchConfigPath)
	if err != nil {
		return err
	}
	if only != "" {
		ids := strings.Split(only, ",")
		searches = slices.DeleteFunc(searches, func(c simulation.SearchConfig) bool {
			return !slices.Contains(ids, c.ID)
		})
	}

	runner, release, err := app.NewRunner(ctx, cfg, m)
	if err != nil {
		return err
	}
	defer release()

	g, gctx := errgroup.WithContext(ctx)

	var srv *server.Server
	if cfg.HTTP.ListenAddress != "" {
		srv = server.New(cfg.HTTP.ListenAddress, runner)
		g.Go(srv.Start)
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			return srv.Stop(shutdownCtx)
		})
	}

	g.Go(func() error {
		results, runErr := runner.Run(gctx, searches)
		printResults(results)

		if cfg.Simulation.ExportPath != "" && len(results) > 0 {
			if err := export.XLSX(cfg.Simulation.ExportPath, results); err != nil {
				return fmt.Errorf("exporting results: %w", err)
			}
			slog.Info("results exported", "path", cfg.Simulation.ExportPath)
		}
		if runErr != nil {
			slog.Warn("some search configs failed", "err", runErr)
		}
		if srv == nil || !serve {
			cancel()
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func printResults(results []*simulation.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	for _, res := range results {
		src := "simulated"
		if res.FromCache {
			src = "cached"
		}
		fmt.Fprintf(w, "== %s (%s, %s, %s)\n", res.ConfigID, res.ConfigName, src, res.Took.Round(time.Millisecond))
		fmt.Fprintln(w, "level\tdps\tbleed dps\tmana/s\tregen\tattack\tsupports")
		for _, lr := range res.Levels {
			if !lr.Found {
				fmt.Fprintf(w, "%d\t-\t-\t-\t%.2f\t-\t-\n", lr.Level, lr.Stats.ManaRegen)
				continue
			}
			fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t%s\t%s\n",
				lr.Level, lr.Stats.DPS, lr.Stats.BleedDPS, lr.Stats.ManaPerSecond(), lr.Stats.ManaRegen,
				lr.Loadout.AttackSkill, strings.Join(lr.Loadout.Supports, ", "))
		}
	}
}
