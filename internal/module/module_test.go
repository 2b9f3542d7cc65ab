package module

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/essence/internal/stat"
)

func loadStarter(t *testing.T) *Module {
	t.Helper()
	m, err := Load("testdata/module.json", Options{})
	require.NoError(t, err)
	return m
}

func TestLoad_Starter(t *testing.T) {
	m := loadStarter(t)

	assert.Equal(t, "starter", m.Name)
	assert.Len(t, m.AttackSkills, 3)
	assert.Len(t, m.SupportSkills, 4)
	assert.Len(t, m.ItemSlots, 3)
	assert.Len(t, m.TreeNodes, 5)
	assert.NotEmpty(t, m.Fingerprint())

	slash, ok := m.AttackSkill("Slash")
	require.True(t, ok)
	assert.Equal(t, 1, slash.LevelReq)
	require.Len(t, slash.Mods, 3)
	assert.Equal(t, stat.MinPhysicalDamage, slash.Mods[0].Name)
	assert.Equal(t, 2.0, slash.Mods[0].Value)

	weapon, ok := m.Slot("weapon")
	require.True(t, ok)
	scale, ok := weapon.ItemMod("wpnStrScale")
	require.True(t, ok, "module templates must resolve")
	require.NotNil(t, scale.Mods[0].Keyword)
	assert.Equal(t, 5.0, scale.Mods[0].Keyword.Divisor)
}

func TestModule_DefaultModsScaleWithLevel(t *testing.T) {
	m := loadStarter(t)

	find := func(mods []stat.Mod, name string) float64 {
		for _, mod := range mods {
			if mod.Name == name {
				return mod.Value
			}
		}
		t.Fatalf("default %s not found", name)
		return 0
	}

	lvl1 := m.DefaultMods(1)
	lvl11 := m.DefaultMods(11)
	assert.Equal(t, 40.0, find(lvl1, stat.MaxMana))
	assert.Equal(t, 80.0, find(lvl11, stat.MaxMana))
	assert.Equal(t, 90.0, find(lvl11, stat.HitChance))

	for _, mod := range lvl1 {
		if mod.Name == stat.HitChance {
			assert.Equal(t, stat.FlagAttack, mod.Flags)
		}
	}
}

func TestEnemyScaling(t *testing.T) {
	e := EnemyScaling{BaseHealth: 10, HealthGrowth: 2, BaseEssence: 1, EssenceGrowth: 3}
	assert.Equal(t, 10.0, e.Health(1))
	assert.Equal(t, 40.0, e.Health(3))
	assert.Equal(t, 9.0, e.Essence(3))
	assert.Equal(t, 10.0, e.Health(0))
}

func TestParse_DuplicateNames(t *testing.T) {
	src := `{"attackSkills": [
		{"name": "Slash", "mods": ["strength|+1 to Strength"]},
		{"name": "Slash", "mods": ["strength|+2 to Strength"]}
	]}`

	_, err := Parse([]byte(src), Options{Mode: stat.ModeStrict})
	require.ErrorIs(t, err, ErrDuplicateName)

	m, err := Parse([]byte(src), Options{Mode: stat.ModeLenient})
	require.NoError(t, err)
	require.Len(t, m.AttackSkills, 1)
	assert.Equal(t, 1.0, m.AttackSkills[0].Mods[0].Value)
}

func TestParse_PlaceholderMismatch(t *testing.T) {
	src := `{"tree": [{"name": "Broken", "mods": ["flatPhys|Adds 3 Physical Damage", "strength|+4 to Strength"]}]}`

	_, err := Parse([]byte(src), Options{Mode: stat.ModeStrict})
	require.ErrorIs(t, err, stat.ErrPlaceholderMismatch)

	m, err := Parse([]byte(src), Options{Mode: stat.ModeLenient})
	require.NoError(t, err)
	require.Len(t, m.TreeNodes[0].Mods, 1)
	assert.Equal(t, stat.Strength, m.TreeNodes[0].Mods[0].Name)
}

func TestParse_UnknownRequirement(t *testing.T) {
	src := `{"tree": [{"name": "A", "requires": ["Missing"], "mods": []}]}`
	_, err := Parse([]byte(src), Options{})
	require.ErrorIs(t, err, ErrInvalidModule)
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{"name": `), Options{})
	require.ErrorIs(t, err, ErrInvalidModule)
}

func TestFingerprint_IgnoresWhitespace(t *testing.T) {
	data, err := os.ReadFile("testdata/module.json")
	require.NoError(t, err)

	compact := strings.Join(strings.Fields(string(data)), " ")
	assert.Equal(t, Fingerprint(data), Fingerprint([]byte(compact)))
	assert.NotEqual(t, Fingerprint(data), Fingerprint([]byte(`{"name":"other"}`)))
}

func TestLoadout_Mods(t *testing.T) {
	m := loadStarter(t)

	l := Loadout{
		AttackSkill: "Slash",
		Supports:    []string{"Faster Attacks"},
		Items:       map[string][]string{"ring": {"ringHit1"}, "armour": {"armStr1"}},
	}
	mods, err := l.Mods(m)
	require.NoError(t, err)
	require.Len(t, mods, 3+2+1+1)
	// armour sorts before ring
	assert.Equal(t, stat.Strength, mods[5].Name)
	assert.Equal(t, stat.HitChance, mods[6].Name)

	_, err = Loadout{AttackSkill: "Nope"}.Mods(m)
	require.Error(t, err)
	_, err = Loadout{Items: map[string][]string{"ring": {"nope"}}}.Mods(m)
	require.Error(t, err)
}

func TestItemMod_Template(t *testing.T) {
	m := loadStarter(t)

	weapon, ok := m.Slot("weapon")
	require.True(t, ok)
	phys1, ok := weapon.ItemMod("wpnPhys1")
	require.True(t, ok)
	phys2, ok := weapon.ItemMod("wpnPhys2")
	require.True(t, ok)

	assert.Equal(t, "flatPhys", phys1.Template())
	assert.Equal(t, phys1.Template(), phys2.Template())
}
