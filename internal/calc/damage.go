package calc

import (
	"math"

	"github.com/udisondev/essence/internal/stat"
)

// Rand is the random source used by attack resolution.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// RollFunc collapses a damage range into a single value.
type RollFunc func(min, max float64) float64

// RollMean returns the midpoint of the range. Used for expected values.
func RollMean(min, max float64) float64 {
	return (min + max) / 2
}

// RollUniform returns a roll drawing uniformly from [min, max].
func RollUniform(rng Rand) RollFunc {
	return func(min, max float64) float64 {
		return min + rng.Float64()*(max-min)
	}
}

// DamageRange is a min/max damage pair.
type DamageRange struct {
	Min float64
	Max float64
}

// BaseDamage is the pre-crit damage of one hit, split by damage type.
type BaseDamage struct {
	// ByType holds what each type keeps after converting part of itself away.
	ByType [stat.DamageTypeCount]DamageRange
	Total  DamageRange
}

// CalcBaseDamage resolves per-type damage ranges under cfg's scope.
//
// Types are processed in conversion order. Each type starts from its own
// flat damage scaled by its inc/more mods, then receives the converted and
// gained share of every earlier type (each share rounded up), and the sum
// is rounded. Converted damage is never scaled again. Finally each type is
// reduced to the fraction it does not convert away.
func CalcBaseDamage(mods []stat.Mod, table ConversionTable, cfg Config) BaseDamage {
	var resolved [stat.DamageTypeCount]DamageRange

	for _, t := range stat.DamageTypes {
		names := t.ScalingNames()
		r := DamageRange{
			Min: ModIncMore(mods, ModSum(mods, stat.Base, cfg, t.MinDamageName()), cfg, names...),
			Max: ModIncMore(mods, ModSum(mods, stat.Base, cfg, t.MaxDamageName()), cfg, names...),
		}
		for _, src := range stat.DamageTypes[:t] {
			f := table[src].Multiplier(t)
			if f == 0 {
				continue
			}
			r.Min += math.Ceil(resolved[src].Min * f)
			r.Max += math.Ceil(resolved[src].Max * f)
		}
		resolved[t] = DamageRange{Min: round(r.Min), Max: round(r.Max)}
	}

	var out BaseDamage
	for _, t := range stat.DamageTypes {
		multi := table[t].Multi
		out.ByType[t] = DamageRange{Min: resolved[t].Min * multi, Max: resolved[t].Max * multi}
		out.Total.Min += out.ByType[t].Min
		out.Total.Max += out.ByType[t].Max
	}
	return out
}

// round rounds half away from zero for positive values, like Math.round.
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// clamp01 limits a chance to [0, 1].
func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
