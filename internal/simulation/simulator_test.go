package simulation

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulator_NeverRecordsUnsustainableBest(t *testing.T) {
	m := loadModule(t, filepath.Join("testdata", "greedy.json"))
	sim := NewSimulator(m, seeded(42), nil)

	cfg := SearchConfig{ID: "greedy", StartLevel: 1, EndLevel: 3, NumIterations: 40}
	levels, err := sim.Search(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, levels, 3)

	for _, lr := range levels {
		require.True(t, lr.Found, "level %d", lr.Level)
		assert.Equal(t, "Cheap", lr.Loadout.AttackSkill, "level %d", lr.Level)
		assert.True(t, lr.Stats.Sustainable())
		assert.InDelta(t, 3, lr.Stats.DPS, 1e-9)
	}
}

func TestSimulator_NothingSustainable(t *testing.T) {
	m := loadModule(t, filepath.Join("testdata", "greedy.json"))
	sim := NewSimulator(m, seeded(42), nil)

	cfg := SearchConfig{ID: "only-greedy", StartLevel: 1, EndLevel: 1, NumIterations: 10, TargetIDs: []string{"Greedy"}}
	levels, err := sim.Search(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, levels, 1)

	lr := levels[0]
	assert.False(t, lr.Found)
	assert.Empty(t, lr.Loadout.AttackSkill)
	assert.Len(t, lr.Mods, len(m.Defaults))
	assert.Zero(t, lr.Stats.DPS)
}

func TestSimulator_NoEligibleCandidates(t *testing.T) {
	m := starter(t)
	sim := NewSimulator(m, seeded(1), nil)

	cfg := SearchConfig{ID: "none", StartLevel: 1, EndLevel: 2, NumIterations: 5, MaxSupports: 2, MaxMods: 2, TargetIDs: []string{"missing"}}
	levels, err := sim.Search(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, levels, 2)
	for _, lr := range levels {
		assert.Empty(t, lr.Loadout.AttackSkill)
		assert.Empty(t, lr.Loadout.Supports)
		assert.Empty(t, lr.Loadout.Items)
	}
}

func TestSimulator_StarterSearch(t *testing.T) {
	m := starter(t)
	rec := newCountingRecorder()
	sim := NewSimulator(m, seeded(2024), rec)

	cfg := SearchConfig{ID: "all", StartLevel: 1, EndLevel: 8, NumIterations: 200, MaxSupports: 2, MaxMods: 2}
	levels, err := sim.Search(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, levels, 8)
	assert.Equal(t, 8, rec.levels)

	for i, lr := range levels {
		assert.Equal(t, i+1, lr.Level)
		require.True(t, lr.Found, "level %d", lr.Level)
		assert.True(t, lr.Stats.Sustainable(), "level %d", lr.Level)
		assert.LessOrEqual(t, len(lr.Loadout.Supports), 2)
		for slot, ids := range lr.Loadout.Items {
			assert.LessOrEqual(t, len(ids), 2, "slot %s", slot)
		}
		_, err := lr.Loadout.Mods(m)
		require.NoError(t, err)
	}

	// levels 6 and 7 unlock nothing new
	assert.False(t, levels[5].Reused)
	assert.True(t, levels[6].Reused)
	assert.Equal(t, levels[5].Loadout, levels[6].Loadout)
	assert.GreaterOrEqual(t, levels[6].Stats.DPS, levels[5].Stats.DPS)
}

func TestSimulator_PriorityAlwaysPicked(t *testing.T) {
	m := starter(t)
	sim := NewSimulator(m, seeded(5), nil)

	cfg := SearchConfig{
		ID: "prio", StartLevel: 6, EndLevel: 6, NumIterations: 60, MaxSupports: 1, MaxMods: 1,
		PriorityIDs: []string{"Brutality", "armRegen1"},
	}
	levels, err := sim.Search(context.Background(), cfg)
	require.NoError(t, err)
	require.True(t, levels[0].Found)
	assert.Equal(t, []string{"Brutality"}, levels[0].Loadout.Supports)
	assert.Equal(t, []string{"armRegen1"}, levels[0].Loadout.Items["armour"])
}

func TestSimulator_SeededSearchIsDeterministic(t *testing.T) {
	m := starter(t)
	cfg := SearchConfig{ID: "det", StartLevel: 2, EndLevel: 5, NumIterations: 50, MaxSupports: 2, MaxMods: 2}

	a, err := NewSimulator(m, seeded(77), nil).Search(context.Background(), cfg)
	require.NoError(t, err)
	b, err := NewSimulator(m, seeded(77), nil).Search(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSimulator_InvalidConfig(t *testing.T) {
	sim := NewSimulator(starter(t), seeded(1), nil)
	_, err := sim.Search(context.Background(), SearchConfig{ID: "bad"})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestPick_PriorityFirst(t *testing.T) {
	pool := []string{"a", "b", "c", "d"}
	got := pick(seeded(1), pool, 2, []string{"zz", "c"}, nil)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0])
	assert.NotEqual(t, "c", got[1])
}
