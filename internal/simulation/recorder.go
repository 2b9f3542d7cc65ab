package simulation

import "time"

// Cache lookup outcomes reported to a Recorder.
const (
	CacheHit     = "hit"
	CacheMiss    = "miss"
	CacheStale   = "stale"
	CacheCorrupt = "corrupt"
)

// Recorder receives search telemetry.
type Recorder interface {
	LevelSearched(configID string, level int, took time.Duration, found, reused bool, dps float64)
	CacheLookup(configID, outcome string)
	ConfigFinished(configID string, took time.Duration, err error)
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) LevelSearched(string, int, time.Duration, bool, bool, float64) {}
func (NopRecorder) CacheLookup(string, string) {}
func (NopRecorder) ConfigFinished(string, time.Duration, error) {}
