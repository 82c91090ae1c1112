package infra

import (
	"context"
	"log/slog"
	"time"

	"compute-service/service/domain"

	"golang.org/x/time/rate"
)

// LoggingHitSink envolve outro sink e engole seus erros, registrando no log no
// máximo uma falha por intervalo.
type LoggingHitSink struct {
	Next   domain.HitSink
	Logger *slog.Logger

	every *rate.Sometimes
}

func NewLoggingHitSink(next domain.HitSink, logger *slog.Logger, interval time.Duration) *LoggingHitSink {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &LoggingHitSink{
		Next:   next,
		Logger: logger,
		every:  &rate.Sometimes{First: 1, Interval: interval},
	}
}

// Record implementa domain.HitSink e sempre retorna nil.
func (s *LoggingHitSink) Record(ctx context.Context, ev domain.HitEvent) error {
	if s == nil || s.Next == nil {
		return nil
	}
	if err := s.Next.Record(ctx, ev); err != nil {
		s.every.Do(func() {
			s.Logger.Warn("hit mirror record failed", "endpoint", string(ev.Endpoint), "error", err)
		})
	}
	return nil
}
