package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/ports"
)

const DefaultQueueSize = 256

var ErrQueueFull = errors.New("notification queue is full")

var _ ports.EventPublisher = (*Dispatcher)(nil)

// Sink receives every dispatched event. Deliver is called from the dispatcher
// worker only and must not block for long.
type Sink interface {
	Deliver(ctx context.Context, event donation.LifecycleEvent)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, event donation.LifecycleEvent)

func (f SinkFunc) Deliver(ctx context.Context, event donation.LifecycleEvent) {
	f(ctx, event)
}

type Dispatcher struct {
	queue  chan donation.LifecycleEvent
	sinks  []Sink
	logger *slog.Logger

	delivered atomic.Uint64
	dropped   atomic.Uint64
}

// NewDispatcher creates a dispatcher with a queue of queueSize events.
// A non-positive queueSize selects DefaultQueueSize.
func NewDispatcher(queueSize int, logger *slog.Logger, sinks ...Sink) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		queue:  make(chan donation.LifecycleEvent, queueSize),
		sinks:  sinks,
		logger: logger.With("component", "notify_dispatcher"),
	}
}

// Publish enqueues event and returns immediately. The caller's context is not
// retained: delivery happens after the request that produced the event ends.
func (d *Dispatcher) Publish(_ context.Context, event donation.LifecycleEvent) error {
	select {
	case d.queue <- event:
		return nil
	default:
		d.dropped.Add(1)
		return ErrQueueFull
	}
}

// Run delivers queued events until ctx is canceled, then flushes what is
// still queued and returns.
func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.InfoContext(ctx, "notification dispatcher started", "sinks", len(d.sinks))
	for {
		select {
		case <-ctx.Done():
			d.flush(context.WithoutCancel(ctx))
			d.logger.InfoContext(ctx, "notification dispatcher stopped")
			return
		case event := <-d.queue:
			d.deliver(ctx, event)
		}
	}
}

// Stats returns how many events were handed to the sinks and how many were
// dropped because the queue was full.
func (d *Dispatcher) Stats() (delivered, dropped uint64) {
	return d.delivered.Load(), d.dropped.Load()
}

func (d *Dispatcher) flush(ctx context.Context) {
	for {
		select {
		case event := <-d.queue:
			d.deliver(ctx, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event donation.LifecycleEvent) {
	for _, sink := range d.sinks {
		d.deliverTo(ctx, sink, event)
	}
	d.delivered.Add(1)
}

func (d *Dispatcher) deliverTo(ctx context.Context, sink Sink, event donation.LifecycleEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "notification sink panicked",
				"event_id", event.ID,
				"panic", r,
			)
		}
	}()
	sink.Deliver(ctx, event)
}
