package calc

import "github.com/udisondev/essence/internal/stat"

// AilmentType identifies an ailment applied by a hit.
type AilmentType uint8

const (
	AilmentBleed AilmentType = iota
	AilmentIgnite
	AilmentPoison
)

func (a AilmentType) String() string {
	switch a {
	case AilmentBleed:
		return "bleed"
	case AilmentIgnite:
		return "ignite"
	case AilmentPoison:
		return "poison"
	}
	return "unknown"
}

// Ailment is an ailment instance produced by a hit. Damage is dealt evenly
// over Duration seconds.
type Ailment struct {
	Type     AilmentType `json:"type"`
	Damage   float64     `json:"damage"`
	Duration float64     `json:"duration"`
}

// AttackOutput is the result of a single resolved attack.
type AttackOutput struct {
	WasHit      bool      `json:"wasHit"`
	WasCrit     bool      `json:"wasCrit"`
	TotalDamage float64   `json:"totalDamage"`
	Ailments    []Ailment `json:"ailments,omitempty"`
}

// Stats is the expected-value summary of a mod list.
// Chances are fractions in [0, 1]; CritMulti is the extra damage fraction
// a crit adds (150% multiplier = 1.5).
type Stats struct {
	DPS       float64 `json:"dps"`
	AvgDamage float64 `json:"avgDamage"`

	HitChance   float64 `json:"hitChance"`
	AttackSpeed float64 `json:"attackSpeed"`
	CritChance  float64 `json:"critChance"`
	CritMulti   float64 `json:"critMulti"`

	MinPhysicalDamage      float64 `json:"minPhysicalDamage"`
	MaxPhysicalDamage      float64 `json:"maxPhysicalDamage"`
	MinElementalDamage     float64 `json:"minElementalDamage"`
	MaxElementalDamage     float64 `json:"maxElementalDamage"`
	MinChaosDamage         float64 `json:"minChaosDamage"`
	MaxChaosDamage         float64 `json:"maxChaosDamage"`
	MinTotalCombinedDamage float64 `json:"minTotalCombinedDamage"`
	MaxTotalCombinedDamage float64 `json:"maxTotalCombinedDamage"`

	BleedChance    float64 `json:"bleedChance"`
	MinBleedDamage float64 `json:"minBleedDamage"`
	MaxBleedDamage float64 `json:"maxBleedDamage"`
	AvgBleedDamage float64 `json:"avgBleedDamage"`
	BleedDuration  float64 `json:"bleedDuration"`
	BleedDPS       float64 `json:"bleedDps"`

	MaxMana      float64 `json:"maxMana"`
	ManaRegen    float64 `json:"manaRegen"`
	AttackCost   float64 `json:"attackCost"`
	Strength     float64 `json:"strength"`
	Dexterity    float64 `json:"dexterity"`
	Intelligence float64 `json:"intelligence"`
}

// ManaPerSecond is the mana spent attacking non-stop.
func (s Stats) ManaPerSecond() float64 {
	return s.AttackCost * s.AttackSpeed
}

// Sustainable reports whether mana regeneration covers attacking non-stop.
func (s Stats) Sustainable() bool {
	return s.ManaPerSecond() <= s.ManaRegen
}

// Calculator is a snapshot of a mod list with its conversion table and
// mod cache. It is read-only and safe for concurrent use; build a new one
// when the mod list changes.
type Calculator struct {
	mods  []stat.Mod
	table ConversionTable
	cache *ModCache
}

// NewCalculator snapshots mods. The slice is copied.
func NewCalculator(mods []stat.Mod) *Calculator {
	own := make([]stat.Mod, len(mods))
	copy(own, mods)
	return &Calculator{
		mods:  own,
		table: NewConversionTable(own),
		cache: NewModCache(own),
	}
}

// Mods returns the snapshot's mods. Callers must not modify the slice.
func (c *Calculator) Mods() []stat.Mod { return c.mods }

// Table returns the conversion table.
func (c *Calculator) Table() ConversionTable { return c.table }

// Cache returns the mod cache.
func (c *Calculator) Cache() *ModCache { return c.cache }

func (c *Calculator) scope(flags stat.Flags) Config {
	return Config{Flags: flags, Cache: c.cache}
}

// Total aggregates a stat under the given scope using the snapshot's cache.
func (c *Calculator) Total(flags stat.Flags, names ...string) float64 {
	return ModTotal(c.mods, c.scope(flags), names...)
}

// BaseDamage resolves the attack's per-type damage ranges.
func (c *Calculator) BaseDamage() BaseDamage {
	return CalcBaseDamage(c.mods, c.table, c.scope(stat.ScopeAttack))
}

// bleedDamage resolves the physical-only, bleed-scoped damage range.
func (c *Calculator) bleedDamage() DamageRange {
	return CalcBaseDamage(c.mods, c.table, c.scope(stat.ScopeBleed)).ByType[stat.Physical]
}

func (c *Calculator) hitChance() float64 {
	return c.Total(stat.ScopeAttack, stat.HitChance) / 100
}

func (c *Calculator) critChance() float64 {
	return c.Total(stat.ScopeAttack, stat.CritChance) / 100
}

func (c *Calculator) critMulti() float64 {
	return c.Total(stat.ScopeAttack, stat.CritMulti) / 100
}

func (c *Calculator) bleedChance() float64 {
	return c.Total(stat.ScopeBleed, stat.BleedChance) / 100
}

func (c *Calculator) bleedDuration() float64 {
	return c.Total(stat.ScopeBleed, stat.BleedDuration)
}

// damage collapses base damage per type with roll and sums the result.
func damage(base BaseDamage, roll RollFunc) float64 {
	total := 0.0
	for _, r := range base.ByType {
		total += roll(r.Min, r.Max)
	}
	return total
}

// Attack resolves one attack: hit roll, damage roll, crit roll, then
// ailment rolls. A miss ends resolution with no damage and no ailments.
func (c *Calculator) Attack(rng Rand) AttackOutput {
	if rng.Float64() >= c.hitChance() {
		return AttackOutput{}
	}

	roll := RollUniform(rng)
	out := AttackOutput{WasHit: true}
	out.TotalDamage = damage(c.BaseDamage(), roll)

	if rng.Float64() < c.critChance() {
		out.WasCrit = true
		out.TotalDamage *= 1 + c.critMulti()
	}

	if a, ok := c.rollBleed(rng, roll); ok {
		out.Ailments = append(out.Ailments, a)
	}
	if a, ok := c.rollIgnite(rng); ok {
		out.Ailments = append(out.Ailments, a)
	}
	if a, ok := c.rollPoison(rng); ok {
		out.Ailments = append(out.Ailments, a)
	}
	return out
}

func (c *Calculator) rollBleed(rng Rand, roll RollFunc) (Ailment, bool) {
	if rng.Float64() >= c.bleedChance() {
		return Ailment{}, false
	}
	r := c.bleedDamage()
	return Ailment{Type: AilmentBleed, Damage: roll(r.Min, r.Max), Duration: c.bleedDuration()}, true
}

// rollIgnite is not implemented: ignite never applies.
func (c *Calculator) rollIgnite(Rand) (Ailment, bool) {
	return Ailment{}, false
}

// rollPoison is not implemented: poison never applies.
func (c *Calculator) rollPoison(Rand) (Ailment, bool) {
	return Ailment{}, false
}

// Stats computes expected values using the mean roll.
func (c *Calculator) Stats() Stats {
	base := c.BaseDamage()
	bleed := c.bleedDamage()

	s := Stats{
		HitChance:   clamp01(c.hitChance()),
		AttackSpeed: c.cache.AttackSpeed,
		CritChance:  clamp01(c.critChance()),
		CritMulti:   c.critMulti(),

		MinPhysicalDamage:      base.ByType[stat.Physical].Min,
		MaxPhysicalDamage:      base.ByType[stat.Physical].Max,
		MinElementalDamage:     base.ByType[stat.Elemental].Min,
		MaxElementalDamage:     base.ByType[stat.Elemental].Max,
		MinChaosDamage:         base.ByType[stat.Chaos].Min,
		MaxChaosDamage:         base.ByType[stat.Chaos].Max,
		MinTotalCombinedDamage: base.Total.Min,
		MaxTotalCombinedDamage: base.Total.Max,

		BleedChance:    clamp01(c.bleedChance()),
		MinBleedDamage: bleed.Min,
		MaxBleedDamage: bleed.Max,
		AvgBleedDamage: RollMean(bleed.Min, bleed.Max),
		BleedDuration:  c.bleedDuration(),

		MaxMana:      c.cache.MaxMana,
		ManaRegen:    c.cache.ManaRegen,
		AttackCost:   c.cache.AttackCost,
		Strength:     c.cache.Strength,
		Dexterity:    c.cache.Dexterity,
		Intelligence: c.cache.Intelligence,
	}

	s.AvgDamage = damage(base, RollMean)
	s.DPS = (s.AvgDamage + s.AvgDamage*s.CritChance*s.CritMulti) * s.AttackSpeed * s.HitChance
	s.BleedDPS = s.AvgBleedDamage * s.BleedChance * s.HitChance * s.AttackSpeed
	return s
}

// Attack snapshots mods and resolves one attack.
func Attack(mods []stat.Mod, rng Rand) AttackOutput {
	return NewCalculator(mods).Attack(rng)
}

// CalcStats snapshots mods and computes expected stats.
func CalcStats(mods []stat.Mod) Stats {
	return NewCalculator(mods).Stats()
}
