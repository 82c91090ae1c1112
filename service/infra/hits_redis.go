package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"compute-service/service/domain"

	"github.com/redis/go-redis/v9"
)

// RedisHitSink espelha os hits em hashes do Redis:
//
//	<prefix>:total            campo = endpoint
//	<prefix>:minute:<yyyymmddhhmm>  campo = endpoint (com TTL)
//
// Nada é lido de volta; os contadores do processo continuam sendo a fonte da verdade.
type RedisHitSink struct {
	rdb *redis.Client

	prefix string
	// ttl aplica apenas nos buckets por minuto. total é cumulativo e não expira.
	ttl    time.Duration

	bucket string // "minute" (padrão) ou "none"
}

type RedisHitOption func(*RedisHitSink)

func WithHitPrefix(prefix string) RedisHitOption {
	return func(s *RedisHitSink) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

func WithHitTTL(d time.Duration) RedisHitOption {
	return func(s *RedisHitSink) { s.ttl = d }
}

func WithHitBucket(bucket string) RedisHitOption {
	return func(s *RedisHitSink) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func NewRedisHitSink(rdb *redis.Client, opts ...RedisHitOption) *RedisHitSink {
	s := &RedisHitSink{
		rdb:    rdb,
		prefix: "compute:hits",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Keys devolve as chaves tocadas por um evento no instante at.
func (s *RedisHitSink) Keys(at time.Time) []string {
	keys := []string{s.prefix + ":total"}
	if s.bucket == "minute" {
		keys = append(keys, fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504")))
	}
	return keys
}

// Record implementa domain.HitSink.
func (s *RedisHitSink) Record(ctx context.Context, ev domain.HitEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	field := string(ev.Endpoint)

	keys := s.Keys(at)
	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, keys[0], field, 1)
	for _, k := range keys[1:] {
		pipe.HIncrBy(ctx, k, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, k, s.ttl)
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}
