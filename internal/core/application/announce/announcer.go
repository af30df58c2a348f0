// Package announce turns committed donation changes into lifecycle events and
// hands them to the notification channel. Emission is fire-and-forget: a
// failure is logged and never reaches the caller whose change was committed.
package announce

import (
	"context"
	"log/slog"

	"connectfood/internal/core/application/arbiter"
	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/ports"
	"connectfood/internal/pkg/errs"
	"connectfood/internal/pkg/ids"
)

type Announcer struct {
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func New(publisher ports.EventPublisher, logger *slog.Logger) (*Announcer, error) {
	if publisher == nil {
		return nil, errs.NewValueIsRequiredError("publisher")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Announcer{publisher: publisher, logger: logger.With("component", "announcer")}, nil
}

// Created announces a newly published donation.
func (a *Announcer) Created(ctx context.Context, d *donation.Donation, actor kernel.Actor) {
	a.emit(ctx, donation.LifecycleEvent{
		Kind:       donation.KindCreated,
		DonationID: d.ID(),
		From:       donation.Unknown,
		To:         d.Status(),
		ActorID:    actor.ID(),
		ActorRole:  actor.Role(),
		OccurredAt: d.CreatedAt(),
		DonorID:    d.DonorID(),
	})
}

// Transitioned announces whatever res committed. An expiry is announced as a
// Cancel carrying donation.ExpiredReason and no actor, whoever triggered it.
// Nothing is emitted for no-ops and rejections.
func (a *Announcer) Transitioned(
	ctx context.Context,
	res arbiter.Result,
	event donation.Event,
	actor kernel.Actor,
	reason string,
) {
	if !res.Applied || res.Donation == nil {
		return
	}

	if res.Expired {
		event = donation.Cancel
		reason = donation.ExpiredReason
		actor = kernel.Actor{}
	}

	a.emit(ctx, donation.LifecycleEvent{
		Kind:       donation.KindTransition,
		DonationID: res.Donation.ID(),
		Event:      event,
		From:       res.From,
		To:         res.Donation.Status(),
		ActorID:    actor.ID(),
		ActorRole:  actor.Role(),
		Reason:     reason,
		OccurredAt: res.Donation.UpdatedAt(),
		DonorID:    res.Donation.DonorID(),
		Claimant:   res.Donation.Claimant(),
		Courier:    res.Donation.Courier(),
	})
}

// IssueReported announces a courier's issue report to the claiming organization.
func (a *Announcer) IssueReported(ctx context.Context, d *donation.Donation, report donation.IssueReport, actor kernel.Actor) {
	a.emit(ctx, donation.LifecycleEvent{
		ID:         report.ID,
		Kind:       donation.KindIssueReported,
		DonationID: d.ID(),
		From:       d.Status(),
		To:         d.Status(),
		ActorID:    actor.ID(),
		ActorRole:  actor.Role(),
		Reason:     report.Description,
		OccurredAt: report.ReportedAt,
		DonorID:    d.DonorID(),
		Claimant:   d.Claimant(),
		Courier:    d.Courier(),
	})
}

func (a *Announcer) emit(ctx context.Context, event donation.LifecycleEvent) {
	if event.ID == "" {
		id, err := ids.NewULID(event.OccurredAt)
		if err != nil {
			a.logger.ErrorContext(ctx, "failed to generate event id", "donation_id", event.DonationID.String(), "error", err)
			return
		}
		event.ID = id
	}

	if err := a.publisher.Publish(ctx, event); err != nil {
		a.logger.WarnContext(ctx, "lifecycle event was not delivered",
			"event_id", event.ID,
			"donation_id", event.DonationID.String(),
			"kind", string(event.Kind),
			"to", event.To.String(),
			"error", err,
		)
	}
}
