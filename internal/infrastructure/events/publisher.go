package events

import (
	"context"

	"go.uber.org/zap"

	"github.com/jobsight/backend/internal/domain/shared"
	"github.com/jobsight/backend/internal/infrastructure/logger"
)

// Publish drains the pending events of a persisted aggregate and emits them
// on the request logger. Services call it after the write succeeds, so an
// event is never announced for a state change that was rolled back. A
// message broker can replace the sink without touching the producers.
func Publish(ctx context.Context, agg shared.AggregateRoot) {
	pending := agg.GetDomainEvents()
	if len(pending) == 0 {
		return
	}
	log := logger.FromContext(ctx)
	for _, e := range pending {
		log.Info("domain event",
			zap.String("event_id", e.EventID().String()),
			zap.String("event_type", e.EventType()),
			zap.String("aggregate_type", e.AggregateType()),
			zap.String("aggregate_id", e.AggregateID().String()),
			zap.String("tenant_id", e.TenantID().String()),
			zap.Time("occurred_at", e.OccurredAt()))
	}
	agg.ClearDomainEvents()
}
