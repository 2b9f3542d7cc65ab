package module

import (
	"errors"
	"math"
	"strings"

	"github.com/udisondev/essence/internal/stat"
)

var (
	ErrDuplicateName = errors.New("duplicate name")
	ErrInvalidModule = errors.New("invalid module")
)

// DefaultStat is a player base stat. Its value grows linearly with level:
// Value + PerLevel × (level - 1).
type DefaultStat struct {
	Name      string
	ValueType stat.ValueType
	Flags     stat.Flags
	Value     float64
	PerLevel  float64
}

// Skill is an attack or support skill.
type Skill struct {
	ID       string
	LevelReq int
	RawMods  []string
	Mods     []stat.Mod
}

// ItemMod is one row of an item slot's mod table.
type ItemMod struct {
	ID       string
	LevelReq int
	Raw      string
	Mods     []stat.Mod
}

// Template returns the id of the template the mod was rolled from.
func (im *ItemMod) Template() string {
	tmpl, _, _ := strings.Cut(im.Raw, "|")
	return tmpl
}

// ItemSlot is an equipment slot with the mods an item in it can roll.
type ItemSlot struct {
	Slot string
	Mods []ItemMod
}

// TreeNode is a passive tree node. A node can be allocated once any of
// Requires is allocated, or at any time when Requires is empty.
type TreeNode struct {
	ID       string
	Requires []string
	RawMods  []string
	Mods     []stat.Mod
}

// EnemyScaling describes level-scaled enemies.
type EnemyScaling struct {
	BaseHealth    float64
	HealthGrowth  float64
	BaseEssence   float64
	EssenceGrowth float64
}

// Health returns enemy health at level.
func (e EnemyScaling) Health(level int) float64 {
	return e.BaseHealth * math.Pow(e.HealthGrowth, float64(max(level, 1)-1))
}

// Essence returns the essence reward for killing an enemy at level.
func (e EnemyScaling) Essence(level int) float64 {
	return e.BaseEssence * math.Pow(e.EssenceGrowth, float64(max(level, 1)-1))
}

// Progression describes player levelling.
type Progression struct {
	LevelCostBase      float64
	LevelCostGrowth    float64
	TreePointsPerLevel int
	MaxLevel           int
}

// LevelCost returns the essence needed to go from level to level+1.
func (p Progression) LevelCost(level int) float64 {
	return p.LevelCostBase * math.Pow(p.LevelCostGrowth, float64(max(level, 1)-1))
}

// Module is the game data a run is played or simulated against.
type Module struct {
	Name          string
	Defaults      []DefaultStat
	Enemy         EnemyScaling
	Progression   Progression
	AttackSkills  []Skill
	SupportSkills []Skill
	ItemSlots     []ItemSlot
	TreeNodes     []TreeNode

	catalog     *stat.Catalog
	fingerprint string
}

// Catalog returns the template catalog the module was resolved with.
func (m *Module) Catalog() *stat.Catalog {
	return m.catalog
}

// Fingerprint returns a content hash of the module source, stable across
// whitespace changes.
func (m *Module) Fingerprint() string {
	return m.fingerprint
}

// DefaultMods returns the player base stat mods for level.
func (m *Module) DefaultMods(level int) []stat.Mod {
	steps := float64(max(level, 1) - 1)
	mods := make([]stat.Mod, 0, len(m.Defaults))
	for _, d := range m.Defaults {
		mods = append(mods, stat.Mod{
			Name:      d.Name,
			ValueType: d.ValueType,
			Flags:     d.Flags,
			Value:     d.Value + d.PerLevel*steps,
		})
	}
	return mods
}

// AttackSkill looks up an attack skill by id.
func (m *Module) AttackSkill(id string) (*Skill, bool) {
	return findSkill(m.AttackSkills, id)
}

// SupportSkill looks up a support skill by id.
func (m *Module) SupportSkill(id string) (*Skill, bool) {
	return findSkill(m.SupportSkills, id)
}

func findSkill(skills []Skill, id string) (*Skill, bool) {
	for i := range skills {
		if skills[i].ID == id {
			return &skills[i], true
		}
	}
	return nil, false
}

// Slot looks up an item slot by name.
func (m *Module) Slot(name string) (*ItemSlot, bool) {
	for i := range m.ItemSlots {
		if m.ItemSlots[i].Slot == name {
			return &m.ItemSlots[i], true
		}
	}
	return nil, false
}

// ItemMod looks up a mod of the slot's table by id.
func (s *ItemSlot) ItemMod(id string) (*ItemMod, bool) {
	for i := range s.Mods {
		if s.Mods[i].ID == id {
			return &s.Mods[i], true
		}
	}
	return nil, false
}

// TreeNode looks up a tree node by id.
func (m *Module) TreeNode(id string) (*TreeNode, bool) {
	for i := range m.TreeNodes {
		if m.TreeNodes[i].ID == id {
			return &m.TreeNodes[i], true
		}
	}
	return nil, false
}
