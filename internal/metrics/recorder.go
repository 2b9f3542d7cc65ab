package metrics

import (
	"strconv"
	"time"

	"github.com/udisondev/essence/internal/simulation"
)

// Recorder feeds simulation telemetry into the package collectors.
type Recorder struct{}

var _ simulation.Recorder = Recorder{}

func (Recorder) LevelSearched(configID string, _ int, took time.Duration, found, reused bool, dps float64) {
	LevelsSearched.WithLabelValues(configID, strconv.FormatBool(found), strconv.FormatBool(reused)).Inc()
	LevelSearchDuration.WithLabelValues(configID).Observe(took.Seconds())
	BestDPS.WithLabelValues(configID).Set(dps)
}

func (Recorder) CacheLookup(configID, outcome string) {
	CacheLookups.WithLabelValues(configID, outcome).Inc()
}

func (Recorder) ConfigFinished(configID string, took time.Duration, err error) {
	status := StatusOK
	if err != nil {
		status = StatusFailed
	}
	ConfigsFinished.WithLabelValues(configID, status).Inc()
	ConfigSearchDuration.WithLabelValues(configID).Observe(took.Seconds())
}
