package simulation

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigs(t *testing.T) {
	cfgs, err := LoadConfigs(filepath.Join("testdata", "search.json"))
	require.NoError(t, err)
	require.Len(t, cfgs, 2)

	phys := cfgs[1]
	assert.Equal(t, "phys", phys.ID)
	assert.Equal(t, 3, phys.StartLevel)
	assert.Equal(t, 6, phys.EndLevel)
	assert.Equal(t, 4, phys.Levels())
	assert.Equal(t, []string{"Brutality"}, phys.PriorityIDs)
	assert.True(t, phys.Targets("Slash"))
	assert.False(t, phys.Targets("Flame Strike"))
	assert.True(t, cfgs[0].Targets("anything"))

	for _, c := range cfgs {
		require.NoError(t, c.Validate())
	}
}

func TestParseConfigs_Malformed(t *testing.T) {
	_, err := ParseConfigs([]byte(`[{"id": `))
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseConfigs([]byte(`{"id": "x"}`))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSearchConfig_Validate(t *testing.T) {
	valid := SearchConfig{ID: "a", StartLevel: 1, EndLevel: 3, NumIterations: 10}

	tests := []struct {
		name   string
		mutate func(*SearchConfig)
	}{
		{"missing id", func(c *SearchConfig) { c.ID = "" }},
		{"zero start level", func(c *SearchConfig) { c.StartLevel = 0 }},
		{"end before start", func(c *SearchConfig) { c.EndLevel = 0 }},
		{"no iterations", func(c *SearchConfig) { c.NumIterations = 0 }},
		{"negative supports", func(c *SearchConfig) { c.MaxSupports = -1 }},
		{"empty target id", func(c *SearchConfig) { c.TargetIDs = []string{""} }},
	}

	require.NoError(t, valid.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			require.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}

func TestSearchConfig_Fingerprint(t *testing.T) {
	a := SearchConfig{ID: "a", StartLevel: 1, EndLevel: 3, NumIterations: 10, MaxMods: 2}
	b := a
	b.StartLevel = 2
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "levels are hashed by the cache key")

	b.PriorityIDs = []string{"Slash"}
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
