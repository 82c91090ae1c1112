// Package observability configura logging estruturado (log/slog) e tracing
// (OpenTelemetry) para os binários do serviço.
package observability
