package calc

import (
	"log/slog"
	"math"
	"slices"

	"github.com/udisondev/essence/internal/stat"
)

// maxKeywordDepth bounds perStat keyword recursion. Keyword cycles are not
// supported; hitting the bound resolves the offending mod to 0.
const maxKeywordDepth = 8

// Config scopes an aggregation query.
type Config struct {
	// Flags selects which flagged mods take part: a mod matches when its
	// flags are a subset of Flags. Flagless mods always match.
	Flags stat.Flags

	// Cache, when set, answers perStat keyword lookups without re-aggregating.
	Cache *ModCache
}

// ModSum aggregates mods of one value type over names.
// Base and Increased values are summed starting at 0. More values are
// combined as a product of (1 + v/100) starting at 1.
// A NaN result is logged and replaced with 0.
func ModSum(mods []stat.Mod, vt stat.ValueType, cfg Config, names ...string) float64 {
	return modSum(mods, vt, cfg, names, 0)
}

// ModTotal returns ModIncMore applied to the summed base value of names.
func ModTotal(mods []stat.Mod, cfg Config, names ...string) float64 {
	return modTotal(mods, cfg, names, 0)
}

// ModIncMore scales base by the increased and more mods of names.
// A base of zero or less yields 0: percent mods have nothing to scale.
func ModIncMore(mods []stat.Mod, base float64, cfg Config, names ...string) float64 {
	return modIncMore(mods, base, cfg, names, 0)
}

func modTotal(mods []stat.Mod, cfg Config, names []string, depth int) float64 {
	base := modSum(mods, stat.Base, cfg, names, depth)
	return modIncMore(mods, base, cfg, names, depth)
}

func modIncMore(mods []stat.Mod, base float64, cfg Config, names []string, depth int) float64 {
	if base <= 0 {
		return 0
	}
	inc := 1 + modSum(mods, stat.Increased, cfg, names, depth)/100
	more := modSum(mods, stat.More, cfg, names, depth)

	total := base * inc * more
	if math.IsNaN(total) {
		slog.Warn("stat total is NaN, using 0", "names", names)
		return 0
	}
	return total
}

func modSum(mods []stat.Mod, vt stat.ValueType, cfg Config, names []string, depth int) float64 {
	result := 0.0
	if vt == stat.More {
		result = 1
	}

	for i := range mods {
		m := &mods[i]
		if m.ValueType != vt || !m.Flags.Matches(cfg.Flags) || !slices.Contains(names, m.Name) {
			continue
		}
		v := keywordValue(mods, m, cfg, depth)
		if vt == stat.More {
			result *= 1 + v/100
		} else {
			result += v
		}
	}

	if math.IsNaN(result) {
		slog.Warn("stat sum is NaN, using 0", "names", names, "value_type", vt)
		return 0
	}
	return result
}

// keywordValue resolves the effective value of a mod. perStat mods scale
// with the total of another stat, read from the cache when possible.
func keywordValue(mods []stat.Mod, m *stat.Mod, cfg Config, depth int) float64 {
	kw := m.Keyword
	if kw == nil || kw.Kind != stat.KeywordPerStat {
		return m.Value
	}

	divisor := kw.Divisor
	if divisor == 0 {
		divisor = 1
	}

	total, ok := cfg.Cache.Lookup(kw.Stat)
	if !ok {
		if depth >= maxKeywordDepth {
			slog.Warn("perStat keyword too deep, using 0", "mod", m.Name, "stat", kw.Stat, "depth", depth)
			return 0
		}
		total = modTotal(mods, cfg, []string{kw.Stat}, depth+1)
	}
	return m.Value * (1 / divisor) * total
}
