package infra

import (
	"sync/atomic"

	"compute-service/service/domain"
)

// AtomicCounters guarda um contador atômico por endpoint.
//
// O mapa é montado uma vez no construtor e nunca mais escrito, então leituras
// concorrentes do mapa são seguras. Cada contador é independente: não há lock
// compartilhado entre eles.
type AtomicCounters struct {
	hits map[domain.Endpoint]*atomic.Uint64
}

func NewAtomicCounters() *AtomicCounters {
	eps := domain.Endpoints()
	c := &AtomicCounters{hits: make(map[domain.Endpoint]*atomic.Uint64, len(eps))}
	for _, ep := range eps {
		c.hits[ep] = new(atomic.Uint64)
	}
	return c
}

// Increment implementa domain.Counters. Endpoints desconhecidos são ignorados.
func (c *AtomicCounters) Increment(ep domain.Endpoint) {
	if h, ok := c.hits[ep]; ok {
		h.Add(1)
	}
}

// Load implementa domain.Counters.
func (c *AtomicCounters) Load(ep domain.Endpoint) uint64 {
	if h, ok := c.hits[ep]; ok {
		return h.Load()
	}
	return 0
}
