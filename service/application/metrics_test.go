package application

import (
	"testing"
	"time"

	"compute-service/service/domain"

	"github.com/stretchr/testify/assert"
)

type fakeCounters map[domain.Endpoint]uint64

func (f fakeCounters) Increment(ep domain.Endpoint) { f[ep]++ }
func (f fakeCounters) Load(ep domain.Endpoint) uint64 { return f[ep] }

func TestMetricsReporter_Snapshot(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	counters := fakeCounters{domain.EndpointHealth: 3, domain.EndpointSum: 1}

	m := NewMetricsReporter(counters, start)
	m.Now = func() time.Time { return start.Add(90*time.Second + 700*time.Millisecond) }

	rep := m.Snapshot()
	assert.Equal(t, uint64(90), rep.UptimeSeconds)
	assert.Equal(t, map[string]uint64{
		"root":     0,
		"health":   3,
		"sum":      1,
		"echo":     0,
		"parallel": 0,
	}, rep.Hits)
}

func TestMetricsReporter_ClockBeforeStartIsZeroUptime(t *testing.T) {
	start := time.Now()
	m := MetricsReporter{Start: start, Now: func() time.Time { return start.Add(-time.Minute) }}

	rep := m.Snapshot()
	assert.Zero(t, rep.UptimeSeconds)
	assert.Len(t, rep.Hits, 5)
}
