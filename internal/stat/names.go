package stat

import "strings"

// Stat names understood by the calculator.
const (
	Damage             = "damage"
	PhysicalDamage     = "physicalDamage"
	ElementalDamage    = "elementalDamage"
	ChaosDamage        = "chaosDamage"
	MinPhysicalDamage  = "minPhysicalDamage"
	MaxPhysicalDamage  = "maxPhysicalDamage"
	MinElementalDamage = "minElementalDamage"
	MaxElementalDamage = "maxElementalDamage"
	MinChaosDamage     = "minChaosDamage"
	MaxChaosDamage     = "maxChaosDamage"

	HitChance   = "hitChance"
	AttackSpeed = "attackSpeed"
	CritChance  = "critChance"
	CritMulti   = "critMulti"

	BleedChance   = "bleedChance"
	BleedDuration = "bleedDuration"

	MaxMana        = "maxMana"
	ManaRegen      = "manaRegen"
	AttackManaCost = "attackManaCost"

	Strength     = "strength"
	Dexterity    = "dexterity"
	Intelligence = "intelligence"
)

// DamageType enumerates damage types in conversion order. A type can only
// convert into types that come after it.
type DamageType uint8

const (
	Physical DamageType = iota
	Elemental
	Chaos

	DamageTypeCount
)

// DamageTypes lists all damage types in conversion order.
var DamageTypes = [DamageTypeCount]DamageType{Physical, Elemental, Chaos}

var damageTypeNames = [DamageTypeCount]string{
	Physical:  "physical",
	Elemental: "elemental",
	Chaos:     "chaos",
}

func (t DamageType) String() string {
	if t >= DamageTypeCount {
		return "unknown"
	}
	return damageTypeNames[t]
}

func (t DamageType) title() string {
	s := t.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// MinDamageName returns the flat minimum damage stat of t, e.g. "minPhysicalDamage".
func (t DamageType) MinDamageName() string { return "min" + t.title() + "Damage" }

// MaxDamageName returns the flat maximum damage stat of t, e.g. "maxPhysicalDamage".
func (t DamageType) MaxDamageName() string { return "max" + t.title() + "Damage" }

// DamageName returns the scaling stat of t, e.g. "physicalDamage".
func (t DamageType) DamageName() string { return t.String() + "Damage" }

// ScalingNames returns every stat name whose inc/more mods scale damage of type t.
func (t DamageType) ScalingNames() []string {
	return []string{Damage, t.DamageName()}
}

// ConvertedToName returns the global conversion stat from src to dst,
// e.g. "physicalConvertedToElemental".
func ConvertedToName(src, dst DamageType) string {
	return src.String() + "ConvertedTo" + dst.title()
}

// SkillConvertedToName returns the skill-level conversion stat from src to dst,
// e.g. "skillPhysicalConvertedToElemental".
func SkillConvertedToName(src, dst DamageType) string {
	return "skill" + src.title() + "ConvertedTo" + dst.title()
}

// GainAsName returns the gain-as stat from src to dst,
// e.g. "physicalGainAsElemental".
func GainAsName(src, dst DamageType) string {
	return src.String() + "GainAs" + dst.title()
}
