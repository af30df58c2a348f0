// Package arbiter serializes competing lifecycle events on a single donation.
//
// Every change follows the same loop: read the current record, decide on a
// private copy, then compare-and-set against the version that was read. When
// another writer wins the race the loop starts over with fresh state, up to a
// bounded number of attempts, after which the caller gets errs.ErrConflict.
// Records are never overwritten blindly and a rejected decision writes nothing.
package arbiter

import (
	"context"
	"fmt"
	"time"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/ports"
	"connectfood/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMaxAttempts is how many read-decide-write rounds Apply makes before
// giving up with a conflict.
const DefaultMaxAttempts = 3

// expireLabel names the implicit expiry transition in spans and observations.
const expireLabel = "Expire"

// Outcome is what a Decide function did to the record it was given.
type Outcome int

const (
	// Apply means the record was mutated and must be committed.
	Apply Outcome = iota + 1

	// NoOp means the record already reflects the request. Nothing is written,
	// the version does not move and no event is emitted.
	NoOp
)

// Decide receives a private copy of the current record and the decision time.
// It either mutates the copy and returns Apply, returns NoOp, or returns an
// error to reject the event. It must not perform I/O: it may run several times.
type Decide func(d *donation.Donation, now time.Time) (Outcome, error)

// Result describes what Apply or ExpireIfDue left in the store.
type Result struct {
	// Donation is the record as committed, or the current record for NoOp.
	Donation *donation.Donation
	// From is the status the committed change started from.
	From donation.Status
	// Applied is true when a transition was committed by this call.
	Applied bool
	// Expired is true when this call committed the implicit expiry.
	Expired bool
}

// Observer is notified of arbiter outcomes. Implementations must be cheap and
// safe for concurrent use.
type Observer interface {
	TransitionCommitted(event string, from, to donation.Status)
	TransitionRejected(event string, code errs.Code)
	ConflictDetected(event string)
}

type nopObserver struct{}

func (nopObserver) TransitionCommitted(string, donation.Status, donation.Status) {}
func (nopObserver) TransitionRejected(string, errs.Code)                         {}
func (nopObserver) ConflictDetected(string)                                      {}

// Arbiter applies lifecycle events with optimistic concurrency.
type Arbiter struct {
	repo        ports.DonationRepository
	clock       ports.Clock
	maxAttempts int
	observer    Observer
	tracer      trace.Tracer
}

// Option configures an Arbiter.
type Option func(*Arbiter)

// WithMaxAttempts overrides DefaultMaxAttempts. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(a *Arbiter) {
		if n >= 1 {
			a.maxAttempts = n
		}
	}
}

func WithObserver(o Observer) Option {
	return func(a *Arbiter) {
		if o != nil {
			a.observer = o
		}
	}
}

// New creates an Arbiter over repo. clock supplies decision times.
func New(repo ports.DonationRepository, clock ports.Clock, opts ...Option) (*Arbiter, error) {
	if repo == nil {
		return nil, errs.NewValueIsRequiredError("repo")
	}
	if clock == nil {
		return nil, errs.NewValueIsRequiredError("clock")
	}

	a := &Arbiter{
		repo:        repo,
		clock:       clock,
		maxAttempts: DefaultMaxAttempts,
		observer:    nopObserver{},
		tracer:      otel.Tracer("connectfood/arbiter"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Apply runs decide for event against donation id until its result is
// committed, rejected, or the attempt budget is spent.
//
// A Claim or AssignCourier on a donation that has lapsed expires it first:
// Apply commits the implicit cancellation and returns errs.ErrExpired together with a Result whose
// Expired flag is set, so the caller can announce the cancellation.
//
// Returns:
//   - errs.ErrObjectNotFound when the donation does not exist
//   - the error returned by decide, unchanged, when the event is rejected
//   - errs.ErrExpired when the donation lapsed before the event could apply
//   - errs.ErrConflict when every attempt lost a race
func (a *Arbiter) Apply(ctx context.Context, id kernel.UUID, event donation.Event, decide Decide) (Result, error) {
	ctx, span := a.tracer.Start(ctx, "arbiter.Apply", trace.WithAttributes(
		attribute.String("donation.id", id.String()),
		attribute.String("donation.event", event.String()),
	))
	defer span.End()

	res, err := a.apply(ctx, id, event, decide, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(errs.CodeOf(err)))
	}
	return res, err
}

func (a *Arbiter) apply(
	ctx context.Context,
	id kernel.UUID,
	event donation.Event,
	decide Decide,
	span trace.Span,
) (Result, error) {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		span.SetAttributes(attribute.Int("arbiter.attempt", attempt))

		current, err := a.repo.Get(ctx, id)
		if err != nil {
			return Result{}, err
		}
		now := a.clock.Now()

		if expiryChecked(event) && current.IsExpired(now) {
			res, committed, err := a.commitExpiry(ctx, current, now)
			if err != nil {
				return Result{}, err
			}
			if !committed {
				continue
			}
			a.observer.TransitionRejected(event.String(), errs.CodeExpired)
			return res, errs.NewExpiredError(
				fmt.Sprintf("donation %s expired at %s", id, current.ExpiresAt().Format(time.RFC3339)))
		}

		next := current.Clone()
		outcome, err := decide(next, now)
		if err != nil {
			a.observer.TransitionRejected(event.String(), errs.CodeOf(err))
			return Result{Donation: current, From: current.Status()}, err
		}
		if outcome == NoOp {
			return Result{Donation: current, From: current.Status()}, nil
		}

		ok, err := a.repo.CompareAndSet(ctx, current.Version(), next)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			a.observer.ConflictDetected(event.String())
			continue
		}

		a.observer.TransitionCommitted(event.String(), current.Status(), next.Status())
		return Result{Donation: next, From: current.Status(), Applied: true}, nil
	}

	a.observer.TransitionRejected(event.String(), errs.CodeConflict)
	return Result{}, errs.NewConflictError(
		fmt.Sprintf("donation %s kept changing during %d attempts to apply %s", id, a.maxAttempts, event))
}

// ExpireIfDue commits the implicit expiry of donation id if it has lapsed, and
// otherwise returns the current record untouched. Reads use it so that a
// lapsed donation is never reported as available.
func (a *Arbiter) ExpireIfDue(ctx context.Context, id kernel.UUID) (Result, error) {
	ctx, span := a.tracer.Start(ctx, "arbiter.ExpireIfDue", trace.WithAttributes(
		attribute.String("donation.id", id.String()),
	))
	defer span.End()

	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		current, err := a.repo.Get(ctx, id)
		if err != nil {
			return Result{}, err
		}
		now := a.clock.Now()

		if !current.IsExpired(now) {
			return Result{Donation: current, From: current.Status()}, nil
		}

		res, committed, err := a.commitExpiry(ctx, current, now)
		if err != nil {
			span.RecordError(err)
			return Result{}, err
		}
		if committed {
			return res, nil
		}
	}

	err := errs.NewConflictError(fmt.Sprintf("donation %s kept changing while expiring", id))
	span.RecordError(err)
	span.SetStatus(codes.Error, string(errs.CodeConflict))
	return Result{}, err
}

// expiryChecked reports whether event is one that would hand a lapsed donation
// to somebody. A donor or organization withdrawing it is still honoured.
func expiryChecked(event donation.Event) bool {
	return event == donation.Claim || event == donation.AssignCourier
}

func (a *Arbiter) commitExpiry(ctx context.Context, current *donation.Donation, now time.Time) (Result, bool, error) {
	next := current.Clone()
	if err := next.Expire(now); err != nil {
		return Result{}, false, err
	}

	ok, err := a.repo.CompareAndSet(ctx, current.Version(), next)
	if err != nil {
		return Result{}, false, err
	}
	if !ok {
		a.observer.ConflictDetected(expireLabel)
		return Result{}, false, nil
	}

	a.observer.TransitionCommitted(expireLabel, current.Status(), next.Status())
	return Result{Donation: next, From: current.Status(), Applied: true, Expired: true}, true, nil
}
