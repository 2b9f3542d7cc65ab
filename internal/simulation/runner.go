package simulation

import (
	"cmp"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/essence/internal/module"
)

// Result is one config's search outcome.
type Result struct {
	RunID         string        `json:"runId"`
	ConfigID      string        `json:"configId"`
	ConfigName    string        `json:"configName,omitempty"`
	StartLevel    int           `json:"startLevel"`
	EndLevel      int           `json:"endLevel"`
	NumIterations int           `json:"numIterations"`
	Hash          string        `json:"hashCode"`
	FromCache     bool          `json:"fromCache"`
	Took          time.Duration `json:"took"`
	Levels        []LevelResult `json:"levels"`
}

// Level returns the result for level.
func (r *Result) Level(level int) (LevelResult, bool) {
	i := level - r.StartLevel
	if i < 0 || i >= len(r.Levels) {
		return LevelResult{}, false
	}
	return r.Levels[i], true
}

// LoadoutFor returns the found loadout of the highest searched level not
// above level.
func (r *Result) LoadoutFor(level int) (module.Loadout, bool) {
	for i := min(level-r.StartLevel, len(r.Levels)-1); i >= 0; i-- {
		if r.Levels[i].Found {
			return r.Levels[i].Loadout, true
		}
	}
	return module.Loadout{}, false
}

// RunnerOptions configures a Runner. Zero fields take defaults: a 64-entry
// memory store, content keys and seed 0.
type RunnerOptions struct {
	Store    Store
	KeyMode  KeyMode
	Seed     uint64
	Recorder Recorder
}

// Runner dispatches one search per config concurrently. Each config gets
// its own Simulator and scratch database. Completed results replace
// earlier ones for the same config regardless of which run produced them.
type Runner struct {
	module *module.Module
	opts   RunnerOptions

	mu      sync.RWMutex
	results map[string]*Result
}

// NewRunner creates a runner for m.
func NewRunner(m *module.Module, opts RunnerOptions) *Runner {
	if opts.Store == nil {
		opts.Store = NewMemoryStore(64, 0)
	}
	if opts.KeyMode == "" {
		opts.KeyMode = KeyContent
	}
	if opts.Recorder == nil {
		opts.Recorder = NopRecorder{}
	}
	return &Runner{
		module:  m,
		opts:    opts,
		results: make(map[string]*Result),
	}
}

// Run searches every config. A config that fails validation or search is
// aborted on its own; the others still complete. The returned error joins
// every per-config failure.
func (r *Runner) Run(ctx context.Context, cfgs []SearchConfig) ([]*Result, error) {
	runID := uuid.NewString()
	log := slog.With("run_id", runID)
	log.Info("simulation run started", "configs", len(cfgs), "key_mode", r.opts.KeyMode)

	results := make([]*Result, len(cfgs))
	errs := make([]error, len(cfgs))

	var g errgroup.Group
	for i, cfg := range cfgs {
		g.Go(func() error {
			start := time.Now()
			res, err := r.runConfig(ctx, log, runID, cfg)
			r.opts.Recorder.ConfigFinished(cfg.ID, time.Since(start), err)
			if err != nil {
				log.Error("config aborted", "config", cfg.ID, "error", err)
				errs[i] = fmt.Errorf("config %q: %w", cfg.ID, err)
				return nil
			}
			res.Took = time.Since(start)
			results[i] = res
			r.publish(res)
			return nil
		})
	}
	_ = g.Wait()

	done := slices.DeleteFunc(results, func(res *Result) bool { return res == nil })
	log.Info("simulation run finished", "completed", len(done), "failed", len(cfgs)-len(done))
	return done, errors.Join(errs...)
}

func (r *Runner) runConfig(ctx context.Context, log *slog.Logger, runID string, cfg SearchConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	key := CacheKey(r.opts.KeyMode, cfg, r.module.Fingerprint())
	res := &Result{
		RunID:         runID,
		ConfigID:      cfg.ID,
		ConfigName:    cfg.Name,
		StartLevel:    cfg.StartLevel,
		EndLevel:      cfg.EndLevel,
		NumIterations: cfg.NumIterations,
		Hash:          key,
	}

	if e := r.lookup(ctx, log, cfg.ID, key); e != nil {
		res.FromCache = true
		res.Levels = e.Levels()
		return res, nil
	}

	sim := NewSimulator(r.module, configRand(r.opts.Seed, cfg.ID), r.opts.Recorder)
	levels, err := sim.Search(ctx, cfg)
	if err != nil {
		return nil, err
	}
	res.Levels = levels

	payload, err := EncodeEntry(NewEntry(cfg, key, levels))
	if err != nil {
		log.Warn("encoding cache entry", "config", cfg.ID, "error", err)
		return res, nil
	}
	if err := r.opts.Store.Save(ctx, cfg.ID, payload); err != nil {
		log.Warn("saving cache entry", "config", cfg.ID, "error", err)
	}
	return res, nil
}

// lookup returns a clean cached entry for configID, or nil when the config
// has to be simulated. Store and decode failures count as misses.
func (r *Runner) lookup(ctx context.Context, log *slog.Logger, configID, key string) *Entry {
	payload, ok, err := r.opts.Store.Load(ctx, configID)
	if err != nil {
		log.Warn("loading cache entry", "config", configID, "error", err)
		ok = false
	}
	if !ok {
		r.opts.Recorder.CacheLookup(configID, CacheMiss)
		log.Info("cache miss", "config", configID)
		return nil
	}

	e, err := DecodeEntry(payload)
	switch {
	case errors.Is(err, ErrCacheMiss):
		r.opts.Recorder.CacheLookup(configID, CacheMiss)
		log.Info("cache miss", "config", configID, "reason", err)
		return nil
	case err != nil:
		r.opts.Recorder.CacheLookup(configID, CacheCorrupt)
		log.Warn("corrupt cache entry", "config", configID, "error", err)
		return nil
	}

	if Dirty(r.opts.KeyMode, e, key) {
		r.opts.Recorder.CacheLookup(configID, CacheStale)
		log.Info("cache entry stale", "config", configID)
		return nil
	}
	r.opts.Recorder.CacheLookup(configID, CacheHit)
	return e
}

func (r *Runner) publish(res *Result) {
	r.mu.Lock()
	r.results[res.ConfigID] = res
	r.mu.Unlock()
}

// Result returns the latest completed result for configID.
func (r *Runner) Result(configID string) (*Result, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.results[configID]
	return res, ok
}

// Results returns the latest completed results ordered by config id.
func (r *Runner) Results() []*Result {
	r.mu.RLock()
	out := make([]*Result, 0, len(r.results))
	for _, res := range r.results {
		out = append(out, res)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Result) int { return cmp.Compare(a.ConfigID, b.ConfigID) })
	return out
}

// configRand derives a per-config random stream so results do not depend
// on config order or scheduling.
func configRand(seed uint64, configID string) *rand.Rand {
	sum := blake2b.Sum256([]byte(configID))
	return rand.New(rand.NewPCG(seed, binary.LittleEndian.Uint64(sum[:8])))
}
