package calc

import "github.com/udisondev/essence/internal/stat"

// ModCache is a frozen snapshot of frequently read stat totals.
// Build a new one whenever the mod list changes.
type ModCache struct {
	AttackSpeed  float64
	MaxMana      float64
	ManaRegen    float64
	AttackCost   float64
	Strength     float64
	Dexterity    float64
	Intelligence float64

	values map[string]float64
}

// NewModCache aggregates the cached totals from mods. Attributes are
// resolved first so that keyword mods reading them already hit the cache.
func NewModCache(mods []stat.Mod) *ModCache {
	c := &ModCache{values: make(map[string]float64, 7)}

	c.Strength = c.resolve(mods, 0, stat.Strength)
	c.Dexterity = c.resolve(mods, 0, stat.Dexterity)
	c.Intelligence = c.resolve(mods, 0, stat.Intelligence)
	c.MaxMana = c.resolve(mods, 0, stat.MaxMana)
	c.ManaRegen = c.resolve(mods, 0, stat.ManaRegen)
	c.AttackCost = c.resolve(mods, stat.ScopeAttack, stat.AttackManaCost)
	c.AttackSpeed = c.resolve(mods, stat.ScopeAttack, stat.AttackSpeed)
	return c
}

// resolve aggregates name against the totals cached so far and stores it.
func (c *ModCache) resolve(mods []stat.Mod, flags stat.Flags, name string) float64 {
	v := ModTotal(mods, Config{Flags: flags, Cache: c}, name)
	c.values[name] = v
	return v
}

// Lookup returns a cached total. Safe to call on a nil cache.
func (c *ModCache) Lookup(name string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	v, ok := c.values[name]
	return v, ok
}
