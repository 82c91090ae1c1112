// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - AtomicCounters: contadores por endpoint com sync/atomic
//   - RedisHitSink: espelho best-effort dos hits em Redis
//   - Collector/Metrics: exposição Prometheus
package infra
