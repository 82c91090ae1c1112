package infra

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"compute-service/service/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisHitSink_Keys(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	s := NewRedisHitSink(nil, WithHitPrefix(":svc:hits:"))
	assert.Equal(t, []string{"svc:hits:total", "svc:hits:minute:202603040506"}, s.Keys(at))

	s = NewRedisHitSink(nil, WithHitBucket(" NONE "))
	assert.Equal(t, []string{"compute:hits:total"}, s.Keys(at))
}

func TestRedisHitSink_NilClientIsNoop(t *testing.T) {
	var nilSink *RedisHitSink
	require.NoError(t, nilSink.Record(context.Background(), domain.HitEvent{Endpoint: domain.EndpointSum}))

	s := NewRedisHitSink(nil, WithHitTTL(time.Minute))
	require.NoError(t, s.Record(context.Background(), domain.HitEvent{Endpoint: domain.EndpointSum}))
}

type failingSink struct {
	calls int
}

func (f *failingSink) Record(context.Context, domain.HitEvent) error {
	f.calls++
	return errors.New("connection refused")
}

func TestLoggingHitSink_SwallowsAndThrottlesErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	next := &failingSink{}

	s := NewLoggingHitSink(next, logger, time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(context.Background(), domain.HitEvent{Endpoint: domain.EndpointEcho}))
	}

	assert.Equal(t, 5, next.calls)
	assert.Equal(t, 1, strings.Count(buf.String(), "hit mirror record failed"))
	assert.Contains(t, buf.String(), "connection refused")
}

func TestLoggingHitSink_NilNextIsNoop(t *testing.T) {
	s := NewLoggingHitSink(nil, nil, 0)
	require.NoError(t, s.Record(context.Background(), domain.HitEvent{}))
}
