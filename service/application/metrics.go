package application

import (
	"time"

	"compute-service/service/domain"
)

// MetricsReporter junta uptime e a leitura dos contadores em um relatório.
type MetricsReporter struct {
	Counters domain.Counters
	Start    time.Time
	// Now permite fixar o relógio em testes. nil usa time.Now.
	Now      func() time.Time
}

func NewMetricsReporter(counters domain.Counters, start time.Time) MetricsReporter {
	return MetricsReporter{Counters: counters, Start: start}
}

// Snapshot lê cada contador de forma independente, sem lock entre eles.
// Dois contadores podem ser observados em instantes lógicos ligeiramente diferentes.
func (m MetricsReporter) Snapshot() domain.Report {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}

	var uptime uint64
	if d := now().Sub(m.Start); d > 0 {
		uptime = uint64(d / time.Second)
	}

	hits := make(map[string]uint64, len(domain.Endpoints()))
	for _, ep := range domain.Endpoints() {
		var v uint64
		if m.Counters != nil {
			v = m.Counters.Load(ep)
		}
		hits[string(ep)] = v
	}
	return domain.Report{UptimeSeconds: uptime, Hits: hits}
}
