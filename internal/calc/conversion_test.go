package calc

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/essence/internal/stat"
)

func conv(name string, v float64) stat.Mod {
	return stat.NewBase(name, v)
}

func assertBudget(t *testing.T, table ConversionTable) {
	t.Helper()
	for _, src := range stat.DamageTypes {
		sum := table[src].Multi
		for _, dst := range stat.DamageTypes {
			sum += table[src].To[dst]
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "source %s", src)
	}
}

func TestNewConversionTable_NoConversion(t *testing.T) {
	table := NewConversionTable(nil)
	for _, src := range stat.DamageTypes {
		assert.Equal(t, 1.0, table[src].Multi)
	}
	assertBudget(t, table)
}

func TestNewConversionTable_FullConversion(t *testing.T) {
	table := NewConversionTable([]stat.Mod{conv(stat.ConvertedToName(stat.Physical, stat.Elemental), 100)})

	assert.Equal(t, 0.0, table[stat.Physical].Multi)
	assert.Equal(t, 1.0, table[stat.Physical].To[stat.Elemental])
	assert.Equal(t, 1.0, table[stat.Elemental].Multi)
	assert.Equal(t, 1.0, table[stat.Chaos].Multi)
}

func TestNewConversionTable_SkillPriority(t *testing.T) {
	table := NewConversionTable([]stat.Mod{
		conv(stat.SkillConvertedToName(stat.Physical, stat.Elemental), 60),
		conv(stat.ConvertedToName(stat.Physical, stat.Chaos), 60),
	})

	p := table[stat.Physical]
	assert.InDelta(t, 0.6, p.To[stat.Elemental], 1e-12)
	assert.InDelta(t, 0.4, p.To[stat.Chaos], 1e-12)
	assert.InDelta(t, 0.0, p.Multi, 1e-12)
	assertBudget(t, table)
}

func TestNewConversionTable_SkillOverflow(t *testing.T) {
	table := NewConversionTable([]stat.Mod{
		conv(stat.SkillConvertedToName(stat.Physical, stat.Elemental), 100),
		conv(stat.SkillConvertedToName(stat.Physical, stat.Chaos), 50),
		conv(stat.ConvertedToName(stat.Physical, stat.Chaos), 30),
	})

	p := table[stat.Physical]
	assert.InDelta(t, 2.0/3, p.To[stat.Elemental], 1e-12)
	assert.InDelta(t, 1.0/3, p.To[stat.Chaos], 1e-12)
	assert.InDelta(t, 0.0, p.Multi, 1e-12)
	assertBudget(t, table)
}

func TestNewConversionTable_GainAsDoesNotReduceSource(t *testing.T) {
	table := NewConversionTable([]stat.Mod{conv(stat.GainAsName(stat.Physical, stat.Chaos), 25)})

	p := table[stat.Physical]
	assert.Equal(t, 1.0, p.Multi)
	assert.Equal(t, 0.25, p.GainAs[stat.Chaos])
	assert.Equal(t, 0.25, p.Multiplier(stat.Chaos))
	assertBudget(t, table)
}

func TestNewConversionTable_ChaosNeverConverts(t *testing.T) {
	table := NewConversionTable([]stat.Mod{
		conv("chaosConvertedToPhysical", 100),
		conv("skillChaosConvertedToElemental", 100),
	})
	assert.Equal(t, 1.0, table[stat.Chaos].Multi)
}

func TestNewConversionTable_BudgetProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	pairs := [][2]stat.DamageType{
		{stat.Physical, stat.Elemental},
		{stat.Physical, stat.Chaos},
		{stat.Elemental, stat.Chaos},
	}

	for i := 0; i < 500; i++ {
		var mods []stat.Mod
		for _, p := range pairs {
			for n := rng.IntN(3); n > 0; n-- {
				mods = append(mods, conv(stat.ConvertedToName(p[0], p[1]), rng.Float64()*120))
			}
			for n := rng.IntN(3); n > 0; n-- {
				mods = append(mods, conv(stat.SkillConvertedToName(p[0], p[1]), rng.Float64()*120))
			}
		}

		table := NewConversionTable(mods)
		assertBudget(t, table)

		// Skill conversion is untouched while it fits into the budget.
		for _, src := range []stat.DamageType{stat.Physical, stat.Elemental} {
			var skillSum float64
			var skill [stat.DamageTypeCount]float64
			for _, dst := range stat.DamageTypes[src+1:] {
				skill[dst] = ModSum(mods, stat.Base, Config{}, stat.SkillConvertedToName(src, dst)) / 100
				skillSum += skill[dst]
			}
			if skillSum > 1 {
				continue
			}
			for _, dst := range stat.DamageTypes[src+1:] {
				require.GreaterOrEqual(t, table[src].To[dst]+1e-12, skill[dst])
			}
		}
	}
}

func TestNewConversionTable_Deterministic(t *testing.T) {
	mods := []stat.Mod{
		conv(stat.ConvertedToName(stat.Physical, stat.Elemental), 33.3),
		conv(stat.SkillConvertedToName(stat.Physical, stat.Chaos), 71.1),
		conv(stat.ConvertedToName(stat.Elemental, stat.Chaos), 12.7),
	}
	snapshot := append([]stat.Mod(nil), mods...)

	a := NewConversionTable(mods)
	b := NewConversionTable(mods)
	for src := range a {
		assert.Equal(t, math.Float64bits(a[src].Multi), math.Float64bits(b[src].Multi))
		for dst := range a[src].To {
			assert.Equal(t, math.Float64bits(a[src].To[dst]), math.Float64bits(b[src].To[dst]))
		}
	}
	assert.Equal(t, snapshot, mods)
}
