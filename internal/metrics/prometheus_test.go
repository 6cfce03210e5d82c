package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder_Counts(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncProviderCall("gemini", true)
	pr.IncProviderCall("gemini", false)
	pr.IncProviderCall("gemini", true)
	pr.IncRetry("gemini")
	pr.IncCacheLookup(true)
	pr.IncCacheLookup(false)
	pr.IncCacheLookup(false)
	pr.ObserveStageDuration("write", 150*time.Millisecond)
	pr.IncStageResult("write", ResultSuccess)
	pr.ObserveRunDuration(2 * time.Second)
	pr.IncRunOutcome("completed")

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 7)

	counts := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				key := mf.GetName()
				for _, l := range m.GetLabel() {
					key += "," + l.GetValue()
				}
				counts[key] = c.GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, counts["code2tutorial_provider_calls_total,gemini,success"])
	assert.Equal(t, 1.0, counts["code2tutorial_provider_retries_total,gemini"])
	assert.Equal(t, 2.0, counts["code2tutorial_cache_lookups_total,miss"])
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncRunOutcome("failed")

	path := filepath.Join(t.TempDir(), "run.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `code2tutorial_run_outcomes_total{outcome="failed"} 1`)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncProviderCall("x", true)
	r.ObserveStageDuration("x", time.Second)
}
