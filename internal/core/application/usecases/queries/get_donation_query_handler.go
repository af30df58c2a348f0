package queries

import (
	"context"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/pkg/errs"
)

// GetDonationQueryHandler returns the current record of a donation. Reading a
// lapsed donation commits its expiry first, so a reader never sees a donation
// as claimable after its expiry.
//
// Example:
//
//	query, _ := NewGetDonationQuery(actor, donationID)
//	d, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown donation
//	}
type GetDonationQueryHandler struct {
	expirer   Expirer
	announcer ExpiryAnnouncer
}

func NewGetDonationQueryHandler(expirer Expirer, announcer ExpiryAnnouncer) GetDonationQueryHandler {
	return GetDonationQueryHandler{
		expirer:   expirer,
		announcer: announcer,
	}
}

// Handle returns errs.ErrUnauthorized when the donation is outside the
// caller's role view.
func (h GetDonationQueryHandler) Handle(ctx context.Context, query GetDonationQuery) (*donation.Donation, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	res, err := h.expirer.ExpireIfDue(ctx, query.DonationID())
	if err != nil {
		return nil, err
	}
	h.announcer.Transitioned(ctx, res, donation.Cancel, query.Actor(), "")

	// An organization that was looking at an available donation still sees
	// the outcome when its own read expired it.
	actor := query.Actor()
	expiredWhileAvailable := res.Expired && res.From == donation.Pending && actor.Role() == kernel.NGO

	d := res.Donation
	if !canView(d, actor) && !expiredWhileAvailable {
		return nil, errs.NewUnauthorizedError("donation is not visible to " + actor.Role().String())
	}
	return d, nil
}
