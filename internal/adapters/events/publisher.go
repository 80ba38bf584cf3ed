// Package events drains the transactional outbox into a publisher.
package events

import (
	"context"
	"log/slog"

	"github.com/openlance/openlance/internal/domain"
)

// LoggingPublisher emits events to the structured log. It stands in for
// a broker until one is provisioned for this service.
type LoggingPublisher struct {
	logger *slog.Logger
}

func NewLoggingPublisher(logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{logger: logger}
}

func (p *LoggingPublisher) Publish(ctx context.Context, event domain.OutboxEvent) error {
	p.logger.InfoContext(ctx, "published event",
		"module", "events",
		"layer", "adapter",
		"operation", "publish_event",
		"outcome", "success",
		"topic", event.Topic,
		"aggregate_id", event.AggregateID.String(),
		"payload", string(event.Payload),
	)
	return nil
}
