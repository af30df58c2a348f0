package notify

import (
	"context"
	"log/slog"

	"connectfood/internal/core/domain/model/donation"
)

// LogSink writes every event as one structured log record.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger.With("component", "lifecycle_events")}
}

func (s *LogSink) Deliver(ctx context.Context, event donation.LifecycleEvent) {
	m := NewMessage(event)
	s.logger.InfoContext(ctx, "lifecycle event",
		"event_id", m.ID,
		"kind", m.Kind,
		"donation_id", m.DonationID,
		"event", m.Event,
		"from", m.FromStatus,
		"to", m.ToStatus,
		"actor_id", m.ActorID,
		"actor_role", m.ActorRole,
		"reason", m.Reason,
		"occurred_at", m.OccurredAt,
	)
}
