package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	cfg := SearchConfig{ID: "a", StartLevel: 1, EndLevel: 5, NumIterations: 100}

	k := CacheKey(KeyContent, cfg, "mod-1")
	assert.Equal(t, k, CacheKey(KeyContent, cfg, "mod-1"))
	assert.NotEqual(t, k, CacheKey(KeyContent, cfg, "mod-2"))

	more := cfg
	more.NumIterations = 200
	assert.NotEqual(t, k, CacheKey(KeyContent, more, "mod-1"))

	// legacy keys ignore the module entirely
	assert.Equal(t, CacheKey(KeyLegacy, cfg, "mod-1"), CacheKey(KeyLegacy, cfg, "mod-2"))
}

func TestDirty(t *testing.T) {
	e := &Entry{Hash: "abc"}

	assert.False(t, Dirty(KeyContent, e, "abc"))
	assert.True(t, Dirty(KeyContent, e, "def"))
	assert.True(t, Dirty(KeyContent, nil, "abc"))
	assert.True(t, Dirty(KeyLegacy, e, "abc"))
}

func TestParseKeyMode(t *testing.T) {
	m, err := ParseKeyMode("")
	require.NoError(t, err)
	assert.Equal(t, KeyContent, m)

	m, err = ParseKeyMode("legacy")
	require.NoError(t, err)
	assert.Equal(t, KeyLegacy, m)

	_, err = ParseKeyMode("sha1")
	require.Error(t, err)
}
