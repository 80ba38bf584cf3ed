package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openlance/openlance/internal/ports"
)

// OutboxWorker pulls unpublished outbox records and hands them to the
// publisher. Separating broker delivery from the transactional write is
// what keeps registration atomic.
type OutboxWorker struct {
	logger    *slog.Logger
	outbox    ports.OutboxRepository
	publisher ports.EventPublisher
	interval  time.Duration
	batchSize int
}

// NewOutboxWorker constructs the publish loop with sane defaults.
func NewOutboxWorker(
	logger *slog.Logger,
	outbox ports.OutboxRepository,
	publisher ports.EventPublisher,
	interval time.Duration,
	batchSize int,
) *OutboxWorker {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &OutboxWorker{
		logger:    logger,
		outbox:    outbox,
		publisher: publisher,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run executes the periodic publish loop until context cancellation.
func (w *OutboxWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.processOnce(ctx); err != nil {
			w.logger.ErrorContext(ctx, "outbox iteration failed",
				"module", "events.outbox_worker",
				"layer", "adapter",
				"operation", "outbox_process_once",
				"outcome", "failure",
				"error", err,
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *OutboxWorker) processOnce(ctx context.Context) error {
	records, err := w.outbox.FetchPending(ctx, w.batchSize)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	now := time.Now().UTC()
	published := make([]uuid.UUID, 0, len(records))
	failed := 0
	for _, rec := range records {
		if err := w.publisher.Publish(ctx, rec); err != nil {
			failed++
			w.logger.WarnContext(ctx, "outbox publish failed; record stays pending",
				"module", "events.outbox_worker",
				"layer", "adapter",
				"operation", "publish_event",
				"outcome", "failure",
				"outbox_id", rec.ID,
				"topic", rec.Topic,
				"error", err,
			)
			continue
		}
		published = append(published, rec.ID)
	}
	if len(published) > 0 {
		if err := w.outbox.MarkPublished(ctx, published, now); err != nil {
			return err
		}
	}
	w.logger.InfoContext(ctx, "outbox batch processed",
		"module", "events.outbox_worker",
		"layer", "adapter",
		"operation", "outbox_process_once",
		"outcome", "success",
		"batch_size", len(records),
		"published_count", len(published),
		"failed_count", failed,
	)
	return nil
}
