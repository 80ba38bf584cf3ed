package domain

import (
	"time"

	"github.com/google/uuid"
)

// Integration event topics emitted through the outbox.
const (
	EventAccountRegistered = "account.registered"
	EventProjectPublished  = "project.published"
)

// OutboxEvent is an integration event staged in the same transaction as
// the state change it describes, then drained by the worker.
type OutboxEvent struct {
	ID          uuid.UUID
	Topic       string
	AggregateID uuid.UUID
	Payload     []byte
	CreatedAt   time.Time
	PublishedAt *time.Time
}
