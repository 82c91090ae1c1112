package domain

import (
	"context"
	"time"
)

// HitEvent representa uma requisição contada em um endpoint.
type HitEvent struct {
	Endpoint Endpoint
	Method   string
	At       time.Time
}

// HitSink recebe cópias dos eventos de contagem (ex.: espelho em Redis).
//
// É best-effort: o contador em memória continua sendo a fonte da verdade e
// nada é lido de volta do sink. Erro não deve derrubar a request.
type HitSink interface {
	Record(ctx context.Context, ev HitEvent) error
}
