package calc

import "github.com/udisondev/essence/internal/stat"

// Conversion describes where damage of one type ends up.
type Conversion struct {
	// Multi is the fraction that stays with the source type.
	Multi float64
	// To holds the converted fraction per target type. Multi + sum(To) == 1.
	To [stat.DamageTypeCount]float64
	// GainAs holds extra damage per target type, on top of the source's own.
	GainAs [stat.DamageTypeCount]float64
}

// Multiplier returns the share of source damage that reaches dst.
func (c Conversion) Multiplier(dst stat.DamageType) float64 {
	return c.To[dst] + c.GainAs[dst]
}

// ConversionTable is indexed by source damage type.
type ConversionTable [stat.DamageTypeCount]Conversion

// conversionScope is the query scope of conversion stats.
var conversionScope = Config{Flags: stat.ScopeAttack}

// NewConversionTable computes how much of each damage type converts into
// later types. Skill conversion takes priority: when skill and global
// conversion exceed 100% together, global conversion shrinks to fit; when
// skill conversion alone exceeds 100%, it is scaled to exactly 100% and
// global conversion is dropped. Chaos never converts.
func NewConversionTable(mods []stat.Mod) ConversionTable {
	var table ConversionTable

	for _, src := range stat.DamageTypes {
		var skill, global, gain [stat.DamageTypeCount]float64
		var skillSum, globalSum float64

		for _, dst := range stat.DamageTypes[src+1:] {
			skill[dst] = percent(ModSum(mods, stat.Base, conversionScope, stat.SkillConvertedToName(src, dst)))
			global[dst] = percent(ModSum(mods, stat.Base, conversionScope, stat.ConvertedToName(src, dst)))
			gain[dst] = percent(ModSum(mods, stat.Base, conversionScope, stat.GainAsName(src, dst)))
			skillSum += skill[dst]
			globalSum += global[dst]
		}

		switch {
		case skillSum > 1:
			for dst := range skill {
				skill[dst] /= skillSum
				global[dst] = 0
			}
		case skillSum+globalSum > 1:
			scale := (1 - skillSum) / globalSum
			for dst := range global {
				global[dst] *= scale
			}
		}

		conv := Conversion{Multi: 1, GainAs: gain}
		for dst := range conv.To {
			conv.To[dst] = skill[dst] + global[dst]
			conv.Multi -= conv.To[dst]
		}
		if conv.Multi < 0 {
			conv.Multi = 0
		}
		table[src] = conv
	}
	return table
}

// percent converts a percent sum to a fraction, treating negatives as 0.
func percent(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return v / 100
}
