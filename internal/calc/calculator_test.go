package calc

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/essence/internal/stat"
)

// fixedRand replays a fixed sequence of draws.
type fixedRand struct {
	draws []float64
	i     int
}

func (r *fixedRand) Float64() float64 {
	v := r.draws[r.i%len(r.draws)]
	r.i++
	return v
}

func basicAttackMods() []stat.Mod {
	return []stat.Mod{
		stat.NewBase(stat.MinPhysicalDamage, 10),
		stat.NewBase(stat.MaxPhysicalDamage, 20),
		stat.NewBase(stat.HitChance, 100),
	}
}

func TestCalcStats_BasicPhysicalAttack(t *testing.T) {
	s := CalcStats(basicAttackMods())

	assert.Equal(t, 10.0, s.MinPhysicalDamage)
	assert.Equal(t, 20.0, s.MaxPhysicalDamage)
	assert.Equal(t, 1.0, s.HitChance)
	assert.Equal(t, 10.0, s.MinTotalCombinedDamage)
	assert.Equal(t, 20.0, s.MaxTotalCombinedDamage)
	assert.Equal(t, 15.0, s.AvgDamage)
}

func TestCalcBaseDamage_FullConversion(t *testing.T) {
	mods := append(basicAttackMods(), stat.NewBase(stat.ConvertedToName(stat.Physical, stat.Elemental), 100))
	c := NewCalculator(mods)

	require.Equal(t, 0.0, c.Table()[stat.Physical].Multi)

	base := c.BaseDamage()
	assert.InDelta(t, 0.0, base.ByType[stat.Physical].Min, 1e-9)
	assert.InDelta(t, 0.0, base.ByType[stat.Physical].Max, 1e-9)
	assert.Equal(t, 10.0, base.ByType[stat.Elemental].Min)
	assert.Equal(t, 20.0, base.ByType[stat.Elemental].Max)
	assert.Equal(t, 10.0, base.Total.Min)
	assert.Equal(t, 20.0, base.Total.Max)
}

func TestCalcBaseDamage_ConversionNotRescaled(t *testing.T) {
	mods := []stat.Mod{
		stat.NewBase(stat.MinPhysicalDamage, 10),
		stat.NewBase(stat.MaxPhysicalDamage, 10),
		stat.NewInc(stat.PhysicalDamage, 100),
		stat.NewInc(stat.ElementalDamage, 500),
		stat.NewBase(stat.ConvertedToName(stat.Physical, stat.Elemental), 50),
	}
	base := NewCalculator(mods).BaseDamage()

	// Physical leaf is 20; half stays, half converts. Elemental inc does not
	// touch converted damage.
	assert.Equal(t, 10.0, base.ByType[stat.Physical].Min)
	assert.Equal(t, 10.0, base.ByType[stat.Elemental].Min)
}

func TestCalcBaseDamage_CeilThenRound(t *testing.T) {
	mods := []stat.Mod{
		stat.NewBase(stat.MinPhysicalDamage, 3),
		stat.NewBase(stat.MaxPhysicalDamage, 7),
		stat.NewBase(stat.MinElementalDamage, 1.4),
		stat.NewBase(stat.MaxElementalDamage, 2.5),
		stat.NewBase(stat.GainAsName(stat.Physical, stat.Elemental), 10),
	}
	base := NewCalculator(mods).BaseDamage()

	// ceil(3*0.1)=1, ceil(7*0.1)=1; round(1.4+1)=2, round(2.5+1)=4
	assert.Equal(t, 2.0, base.ByType[stat.Elemental].Min)
	assert.Equal(t, 4.0, base.ByType[stat.Elemental].Max)
	assert.Equal(t, 3.0, base.ByType[stat.Physical].Min)
	assert.Equal(t, 7.0, base.ByType[stat.Physical].Max)
}

func TestCalcBaseDamage_ChainedConversion(t *testing.T) {
	mods := []stat.Mod{
		stat.NewBase(stat.MinPhysicalDamage, 100),
		stat.NewBase(stat.MaxPhysicalDamage, 100),
		stat.NewBase(stat.ConvertedToName(stat.Physical, stat.Elemental), 100),
		stat.NewBase(stat.ConvertedToName(stat.Elemental, stat.Chaos), 50),
	}
	base := NewCalculator(mods).BaseDamage()

	assert.Equal(t, 0.0, base.ByType[stat.Physical].Min)
	assert.Equal(t, 50.0, base.ByType[stat.Elemental].Min)
	assert.Equal(t, 50.0, base.ByType[stat.Chaos].Min)
	assert.Equal(t, 100.0, base.Total.Min)
}

func TestAttack_Miss(t *testing.T) {
	mods := []stat.Mod{
		stat.NewBase(stat.MinPhysicalDamage, 10),
		stat.NewBase(stat.MaxPhysicalDamage, 20),
		stat.NewBase(stat.HitChance, 50),
		stat.NewBase(stat.BleedChance, 100).WithFlags(stat.FlagBleed),
	}
	out := Attack(mods, &fixedRand{draws: []float64{0.5}})

	assert.False(t, out.WasHit)
	assert.False(t, out.WasCrit)
	assert.Equal(t, 0.0, out.TotalDamage)
	assert.Empty(t, out.Ailments)
}

func TestAttack_CritAndBleed(t *testing.T) {
	mods := []stat.Mod{
		stat.NewBase(stat.MinPhysicalDamage, 10),
		stat.NewBase(stat.MaxPhysicalDamage, 10),
		stat.NewBase(stat.HitChance, 100).WithFlags(stat.FlagAttack),
		stat.NewBase(stat.CritChance, 100).WithFlags(stat.FlagAttack),
		stat.NewBase(stat.CritMulti, 50).WithFlags(stat.FlagAttack),
		stat.NewBase(stat.BleedChance, 100).WithFlags(stat.FlagBleed),
		stat.NewBase(stat.BleedDuration, 4),
		stat.NewInc(stat.Damage, 100).WithFlags(stat.FlagBleed),
	}
	out := Attack(mods, &fixedRand{draws: []float64{0.3}})

	require.True(t, out.WasHit)
	assert.True(t, out.WasCrit)
	assert.InDelta(t, 15.0, out.TotalDamage, 1e-9)
	require.Len(t, out.Ailments, 1)
	assert.Equal(t, AilmentBleed, out.Ailments[0].Type)
	assert.InDelta(t, 20.0, out.Ailments[0].Damage, 1e-9)
	assert.Equal(t, 4.0, out.Ailments[0].Duration)
}

func TestAttack_SeededDeterminism(t *testing.T) {
	mods := []stat.Mod{
		stat.NewBase(stat.MinPhysicalDamage, 5),
		stat.NewBase(stat.MaxPhysicalDamage, 50),
		stat.NewBase(stat.MinElementalDamage, 1),
		stat.NewBase(stat.MaxElementalDamage, 9),
		stat.NewBase(stat.HitChance, 80),
		stat.NewBase(stat.CritChance, 30),
		stat.NewBase(stat.CritMulti, 100),
		stat.NewBase(stat.BleedChance, 40),
		stat.NewBase(stat.BleedDuration, 3),
	}
	c := NewCalculator(mods)

	run := func() []AttackOutput {
		rng := rand.New(rand.NewPCG(2024, 10))
		outs := make([]AttackOutput, 200)
		for i := range outs {
			outs[i] = c.Attack(rng)
		}
		return outs
	}

	a, b := run(), run()
	require.Equal(t, a, b)

	var hits int
	for _, o := range a {
		if o.WasHit {
			hits++
			assert.GreaterOrEqual(t, o.TotalDamage, 6.0)
		}
	}
	assert.Greater(t, hits, 0)
	assert.Less(t, hits, len(a))
}

func TestStats_DPSFormula(t *testing.T) {
	mods := []stat.Mod{
		stat.NewBase(stat.MinPhysicalDamage, 10),
		stat.NewBase(stat.MaxPhysicalDamage, 30),
		stat.NewBase(stat.HitChance, 90),
		stat.NewBase(stat.CritChance, 20),
		stat.NewBase(stat.CritMulti, 150),
		stat.NewBase(stat.AttackSpeed, 2),
		stat.NewBase(stat.BleedChance, 50),
		stat.NewBase(stat.BleedDuration, 5),
	}
	s := CalcStats(mods)

	avg := 20.0
	want := (avg + avg*0.2*1.5) * 2 * 0.9
	assert.InDelta(t, want, s.DPS, 1e-9)
	assert.InDelta(t, 20.0, s.AvgBleedDamage, 1e-9)
	assert.InDelta(t, 20*0.5*0.9*2, s.BleedDPS, 1e-9)
	assert.Equal(t, 5.0, s.BleedDuration)
}

func TestStats_Sustainable(t *testing.T) {
	mods := []stat.Mod{
		stat.NewBase(stat.AttackSpeed, 2),
		stat.NewBase(stat.AttackManaCost, 5),
		stat.NewBase(stat.ManaRegen, 8),
	}
	s := CalcStats(mods)
	assert.Equal(t, 10.0, s.ManaPerSecond())
	assert.False(t, s.Sustainable())

	s = CalcStats(append(mods, stat.NewBase(stat.ManaRegen, 2)))
	assert.True(t, s.Sustainable())
}

func TestStats_ChancesClamped(t *testing.T) {
	s := CalcStats([]stat.Mod{
		stat.NewBase(stat.HitChance, 150),
		stat.NewBase(stat.CritChance, 250),
	})
	assert.Equal(t, 1.0, s.HitChance)
	assert.Equal(t, 1.0, s.CritChance)
}
