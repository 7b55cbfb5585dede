package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func TestFromContextDefault(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	// No-op logger should not panic
	l.Info("ignored")
}

func TestWithContextRoundTrip(t *testing.T) {
	base, logs := newObserved()
	ctx := WithContext(context.Background(), base)

	FromContext(ctx).Info("hello")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "hello", logs.All()[0].Message)
}

func TestWithTenantIDEnrichment(t *testing.T) {
	base, logs := newObserved()
	ctx, enriched := WithTenantID(context.Background(), base, "biz-123")

	assert.Equal(t, "biz-123", GetTenantID(ctx))

	enriched.Info("scoped")
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "biz-123", fields["tenant_id"])
}

func TestContextLoggerCorrelationFields(t *testing.T) {
	base, logs := newObserved()
	ctx := WithContext(context.Background(), base)
	ctx, _ = WithRequestID(ctx, base, "req-1")
	ctx, _ = WithTenantID(ctx, base, "biz-1")
	ctx, _ = WithUserID(ctx, base, "user-1")

	L(ctx).Info("correlated")

	entries := logs.FilterMessage("correlated").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "biz-1", fields["tenant_id"])
	assert.Equal(t, "user-1", fields["user_id"])
}

func TestContextLoggerWith(t *testing.T) {
	base, logs := newObserved()
	ctx := WithContext(context.Background(), base)

	L(ctx).With(zap.String("component", "billing")).Warn("attention")

	entries := logs.FilterMessage("attention").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "billing", entries[0].ContextMap()["component"])
}

func TestGetTraceFieldsWithoutSpan(t *testing.T) {
	base, logs := newObserved()
	ctx := WithContext(context.Background(), base)

	L(ctx).Info("no span")

	entries := logs.FilterMessage("no span").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	_, hasTrace := fields["trace_id"]
	assert.False(t, hasTrace)
}
