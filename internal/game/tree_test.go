package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayer_Allocate(t *testing.T) {
	p := newPlayer(t)

	require.ErrorIs(t, p.Allocate("Might"), ErrNoTreePoints)

	p.treePoints = 3
	require.ErrorIs(t, p.Allocate("Nope"), ErrUnknownNode)
	require.ErrorIs(t, p.Allocate("Brute Force"), ErrRequirementMissing)

	require.NoError(t, p.Allocate("Might"))
	require.ErrorIs(t, p.Allocate("Might"), ErrAlreadyAllocated)
	require.NoError(t, p.Allocate("Brute Force"))

	assert.Equal(t, []string{"Might", "Brute Force"}, p.Allocated())
	assert.Equal(t, 1, p.TreePoints())
	assert.InDelta(t, 20, p.Stats().Strength, 1e-9)
}

func TestPlayer_Deallocate(t *testing.T) {
	p := newPlayer(t)
	p.treePoints = 2
	require.NoError(t, p.Allocate("Might"))
	require.NoError(t, p.Allocate("Brute Force"))

	require.ErrorIs(t, p.Deallocate("Focus"), ErrNotAllocated)
	require.ErrorIs(t, p.Deallocate("Might"), ErrNodeRequired)

	require.NoError(t, p.Deallocate("Brute Force"))
	require.NoError(t, p.Deallocate("Might"))

	assert.Empty(t, p.Allocated())
	assert.Equal(t, 2, p.TreePoints())
	assert.Equal(t, len(p.Module().Defaults), p.Mods().Len())
}
