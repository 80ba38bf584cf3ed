package ports

import (
	"context"

	"github.com/openlance/openlance/internal/domain"
)

// EventPublisher delivers drained outbox events to the outside world.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.OutboxEvent) error
}
