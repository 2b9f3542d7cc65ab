package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/udisondev/essence/internal/app"
	"github.com/udisondev/essence/internal/config"
	"github.com/udisondev/essence/internal/game"
	"github.com/udisondev/essence/internal/module"
	"github.com/udisondev/essence/internal/simulation"
)

const ConfigPath = "config/essence.yaml"

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", ConfigPath, "path to the YAML config")
	plan := flag.String("plan", "", "search config id whose results pick the loadout per level")
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

	if err := run(ctx, *configPath, *plan); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath, plan string) error {
	if p := os.Getenv("ESSENCE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(cfg.NewLogger())

	m, err := app.LoadModule(cfg)
	if err != nil {
		return err
	}

	var planner game.Planner
	if plan != "" {
		res, err := planFrom(ctx, cfg, m, plan)
		if err != nil {
			return err
		}
		planner = game.PlannerFunc(res.LoadoutFor)
	}

	player := game.NewPlayer(m, game.PlayerOptions{})
	if planner == nil {
		if len(m.AttackSkills) == 0 {
			return errors.New("module has no attack skills")
		}
		if err := player.SetAttackSkill(m.AttackSkills[0].ID); err != nil {
			return err
		}
	}
	player.SetChangeFunc(func(c game.Change) {
		if c == game.ChangeLevel {
			st := player.Stats()
			slog.Info("level up", "level", player.Level(), "dps", st.DPS, "tree_points", player.TreePoints())
		}
	})

	battle := game.NewBattle(player, rand.New(rand.NewPCG(cfg.Simulation.Seed, 0)))
	battle.ZoneLevel = cfg.Autoplay.ZoneLevel

	loop := game.NewLoop(cfg.Autoplay.Tick)
	loop.Add(game.NewAutopilot(player, planner))
	loop.Add(battle)

	switch {
	case cfg.Autoplay.Realtime:
		runCtx := ctx
		if cfg.Autoplay.Duration > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, cfg.Autoplay.Duration)
			defer cancel()
		}
		if err := loop.Run(runCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			return err
		}
	case cfg.Autoplay.Duration > 0:
		loop.Advance(int(cfg.Autoplay.Duration / loop.Step()))
	default:
		return errors.New("autoplay needs a duration unless realtime is set")
	}

	st := player.Stats()
	slog.Info("autoplay finished",
		"elapsed", loop.Elapsed(),
		"level", player.Level(),
		"kills", battle.Kills(),
		"essence", player.Essence(),
		"dps", st.DPS,
		"attack", player.AttackSkill(),
		"supports", player.Supports(),
		"tree", player.Allocated())
	return nil
}

// planFrom runs the named search config, reusing the cache when possible.
func planFrom(ctx context.Context, cfg config.Essence, m *module.Module, id string) (*simulation.Result, error) {
	searches, err := simulation.LoadConfigs(cfg.SearchConfigPath)
	if err != nil {
		return nil, err
	}
	for _, s := range searches {
		if s.ID != id {
			continue
		}
		runner, release, err := app.NewRunner(ctx, cfg, m)
		if err != nil {
			return nil, err
		}
		defer release()
		results, err := runner.Run(ctx, []simulation.SearchConfig{s})
		if err != nil {
			return nil, err
		}
		return results[0], nil
	}
	return nil, fmt.Errorf("search config %q not found in %s", id, cfg.SearchConfigPath)
}
