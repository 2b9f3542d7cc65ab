package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/udisondev/essence/internal/simulation"
)

func TestRecorder(t *testing.T) {
	var rec Recorder

	rec.LevelSearched("rec-a", 3, 10*time.Millisecond, true, false, 42.5)
	rec.CacheLookup("rec-a", simulation.CacheHit)
	rec.CacheLookup("rec-a", simulation.CacheHit)
	rec.ConfigFinished("rec-a", time.Second, nil)
	rec.ConfigFinished("rec-b", time.Second, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(LevelsSearched.WithLabelValues("rec-a", "true", "false")))
	assert.Equal(t, 42.5, testutil.ToFloat64(BestDPS.WithLabelValues("rec-a")))
	assert.Equal(t, 2.0, testutil.ToFloat64(CacheLookups.WithLabelValues("rec-a", simulation.CacheHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(ConfigsFinished.WithLabelValues("rec-a", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(ConfigsFinished.WithLabelValues("rec-b", StatusFailed)))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/things/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/things/{id}", "418")))
}
