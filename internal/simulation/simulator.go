package simulation

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/udisondev/essence/internal/calc"
	"github.com/udisondev/essence/internal/moddb"
	"github.com/udisondev/essence/internal/module"
	"github.com/udisondev/essence/internal/stat"
)

// LevelResult is the best sustainable loadout found for one level.
// Mods is the full flattened mod list the stats were computed from.
// When Found is false no round was both sustainable and damaging, and
// Mods holds the level's defaults only.
type LevelResult struct {
	Level   int            `json:"level"`
	Found   bool           `json:"found"`
	Reused  bool           `json:"reused,omitempty"`
	Loadout module.Loadout `json:"loadout"`
	Mods    []stat.Mod     `json:"mods"`
	Stats   calc.Stats     `json:"stats"`
}

// Simulator searches random loadouts for the highest sustainable DPS at
// each level of a config's range. A Simulator owns its scratch mod
// database and is not safe for concurrent use.
type Simulator struct {
	module *module.Module
	rng    Rand
	rec    Recorder

	scratch     *moddb.DB
	defaultsSrc moddb.Source
	roundSrc    moddb.Source
}

// NewSimulator creates a simulator drawing from rng. rec may be nil.
func NewSimulator(m *module.Module, rng Rand, rec Recorder) *Simulator {
	if rec == nil {
		rec = NopRecorder{}
	}
	return &Simulator{
		module:      m,
		rng:         rng,
		rec:         rec,
		scratch:     moddb.New(),
		defaultsSrc: moddb.NewSource("defaults"),
		roundSrc:    moddb.NewSource("round"),
	}
}

// candidates are the ids eligible at one level.
type candidates struct {
	attacks  []string
	supports []string
	slots    []string
	items    map[string][]*module.ItemMod
}

func (c candidates) key() string {
	var b strings.Builder
	b.WriteString(strings.Join(c.attacks, ","))
	b.WriteByte(';')
	b.WriteString(strings.Join(c.supports, ","))
	for _, slot := range c.slots {
		b.WriteByte(';')
		b.WriteString(slot)
		b.WriteByte(':')
		for _, im := range c.items[slot] {
			b.WriteString(im.ID)
			b.WriteByte(',')
		}
	}
	return b.String()
}

func (s *Simulator) eligible(cfg SearchConfig, level int) candidates {
	c := candidates{items: make(map[string][]*module.ItemMod)}
	for _, sk := range s.module.AttackSkills {
		if sk.LevelReq <= level && cfg.Targets(sk.ID) {
			c.attacks = append(c.attacks, sk.ID)
		}
	}
	for _, sk := range s.module.SupportSkills {
		if sk.LevelReq <= level && cfg.Targets(sk.ID) {
			c.supports = append(c.supports, sk.ID)
		}
	}
	for i := range s.module.ItemSlots {
		slot := &s.module.ItemSlots[i]
		for j := range slot.Mods {
			im := &slot.Mods[j]
			if im.LevelReq <= level && cfg.Targets(im.ID) {
				c.items[slot.Slot] = append(c.items[slot.Slot], im)
			}
		}
		if len(c.items[slot.Slot]) > 0 {
			c.slots = append(c.slots, slot.Slot)
		}
	}
	return c
}

// Search runs cfg level by level in ascending order. A level whose
// eligible set equals the previous level's reuses the previous winner,
// re-evaluated at the new level, when that is still sustainable.
func (s *Simulator) Search(ctx context.Context, cfg SearchConfig) ([]LevelResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results := make([]LevelResult, 0, cfg.Levels())
	var prevKey string
	for level := cfg.StartLevel; level <= cfg.EndLevel; level++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		start := time.Now()

		s.scratch.Clear()
		s.scratch.Add(s.defaultsSrc, s.module.DefaultMods(level)...)

		cands := s.eligible(cfg, level)
		key := cands.key()

		var res LevelResult
		reused := false
		if n := len(results); n > 0 && results[n-1].Found && key == prevKey {
			res, reused = s.reuse(level, results[n-1].Loadout)
		}
		if !reused {
			res = s.searchLevel(cfg, level, cands)
		}
		prevKey = key
		results = append(results, res)

		s.rec.LevelSearched(cfg.ID, level, time.Since(start), res.Found, res.Reused, res.Stats.DPS)
		slog.Info("level searched",
			"config", cfg.ID,
			"level", level,
			"found", res.Found,
			"reused", res.Reused,
			"dps", res.Stats.DPS)
	}
	return results, nil
}

func (s *Simulator) reuse(level int, l module.Loadout) (LevelResult, bool) {
	mods, st, err := s.evaluate(l)
	if err != nil || !st.Sustainable() {
		return LevelResult{}, false
	}
	return LevelResult{Level: level, Found: true, Reused: true, Loadout: l, Mods: mods, Stats: st}, true
}

func (s *Simulator) searchLevel(cfg SearchConfig, level int, cands candidates) LevelResult {
	var best LevelResult
	for range cfg.NumIterations {
		l := s.draw(cfg, cands)
		mods, st, err := s.evaluate(l)
		if err != nil {
			// candidates come from the module itself
			slog.Error("evaluating round", "config", cfg.ID, "level", level, "error", err)
			continue
		}
		if st.DPS > best.Stats.DPS && st.Sustainable() {
			best = LevelResult{Found: true, Loadout: l, Mods: mods, Stats: st}
		}
	}
	s.scratch.RemoveBySource(s.roundSrc)

	if !best.Found {
		best.Mods = s.scratch.ModList()
		best.Stats = calc.CalcStats(best.Mods)
	}
	best.Level = level
	return best
}

// evaluate installs l as the round's contribution and computes its stats.
func (s *Simulator) evaluate(l module.Loadout) ([]stat.Mod, calc.Stats, error) {
	mods, err := l.Mods(s.module)
	if err != nil {
		return nil, calc.Stats{}, err
	}
	s.scratch.Replace(s.roundSrc, mods...)
	list := s.scratch.ModList()
	return list, calc.CalcStats(list), nil
}

func (s *Simulator) draw(cfg SearchConfig, c candidates) module.Loadout {
	var l module.Loadout
	if a := pick(s.rng, c.attacks, 1, cfg.PriorityIDs, nil); len(a) > 0 {
		l.AttackSkill = a[0]
	}
	l.Supports = pick(s.rng, c.supports, s.count(cfg.MaxSupports, c.supports, cfg.PriorityIDs), cfg.PriorityIDs, nil)

	for _, slot := range c.slots {
		pool := c.items[slot]
		ids := make([]string, len(pool))
		for i, im := range pool {
			ids[i] = im.ID
		}
		family := func(a, b string) bool { return sameTemplate(pool, a, b) }
		picked := pick(s.rng, ids, s.count(cfg.MaxMods, ids, cfg.PriorityIDs), cfg.PriorityIDs, family)
		if len(picked) > 0 {
			if l.Items == nil {
				l.Items = make(map[string][]string)
			}
			l.Items[slot] = picked
		}
	}
	return l
}

// count draws how many of pool to pick, from zero to limit, but never fewer
// than the prioritised ids present in pool.
func (s *Simulator) count(limit int, pool, priority []string) int {
	if limit <= 0 || len(pool) == 0 {
		return 0
	}
	n := s.rng.IntN(limit + 1)
	prio := 0
	for _, id := range priority {
		if slices.Contains(pool, id) {
			prio++
		}
	}
	return max(n, min(prio, limit))
}

// pick takes prioritised ids present in pool first, then fills up to n
// with random draws from the rest.
func pick(rng Rand, pool []string, n int, priority []string, eq func(a, b string) bool) []string {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	rest := slices.Clone(pool)
	var out []string
	for _, id := range priority {
		if len(out) == n {
			break
		}
		i := slices.Index(rest, id)
		if i < 0 {
			continue
		}
		out = append(out, id)
		rest = slices.Delete(rest, i, i+1)
		if eq != nil {
			rest = slices.DeleteFunc(rest, func(v string) bool { return eq(v, id) })
		}
	}
	return append(out, GetRandoms(rng, rest, n-len(out), eq)...)
}

// sameTemplate reports whether two item mods roll the same template; an
// item carries at most one mod per template.
func sameTemplate(pool []*module.ItemMod, a, b string) bool {
	return templateOf(pool, a) == templateOf(pool, b)
}

func templateOf(pool []*module.ItemMod, id string) string {
	for _, im := range pool {
		if im.ID == id {
			return im.Template()
		}
	}
	return id
}
