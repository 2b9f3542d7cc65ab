package game

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/essence/internal/module"
	"github.com/udisondev/essence/internal/stat"
)

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func loadStarter(t *testing.T) *module.Module {
	t.Helper()
	m, err := module.Load(filepath.Join("..", "module", "testdata", "module.json"), module.Options{Mode: stat.ModeStrict})
	require.NoError(t, err)
	return m
}

func newPlayer(t *testing.T) *Player {
	t.Helper()
	return NewPlayer(loadStarter(t), PlayerOptions{})
}
