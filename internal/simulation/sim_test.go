package simulation

import (
	"math/rand/v2"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/essence/internal/module"
	"github.com/udisondev/essence/internal/stat"
)

func loadModule(t *testing.T, path string) *module.Module {
	t.Helper()
	m, err := module.Load(path, module.Options{Mode: stat.ModeStrict})
	require.NoError(t, err)
	return m
}

func starter(t *testing.T) *module.Module {
	return loadModule(t, filepath.Join("..", "module", "testdata", "module.json"))
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 1))
}

type countingRecorder struct {
	mu       sync.Mutex
	lookups  map[string]int
	levels   int
	finished map[string]error
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{lookups: make(map[string]int), finished: make(map[string]error)}
}

func (r *countingRecorder) LevelSearched(string, int, time.Duration, bool, bool, float64) {
	r.mu.Lock()
	r.levels++
	r.mu.Unlock()
}

func (r *countingRecorder) CacheLookup(_, outcome string) {
	r.mu.Lock()
	r.lookups[outcome]++
	r.mu.Unlock()
}

func (r *countingRecorder) ConfigFinished(id string, _ time.Duration, err error) {
	r.mu.Lock()
	r.finished[id] = err
	r.mu.Unlock()
}

func (r *countingRecorder) lookup(outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookups[outcome]
}
