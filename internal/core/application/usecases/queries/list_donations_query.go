package queries

import (
	"errors"
	"slices"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/pkg/errs"
	"connectfood/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var ErrListDonationsQueryIsNotConstructed = errors.New(
	"ListDonationsQuery must be created via NewListDonationsQuery constructor",
)

// ListDonationsQuery lists the donations in the caller's role view, newest
// first, optionally narrowed to some statuses.
type ListDonationsQuery struct {
	actor    kernel.Actor
	statuses []donation.Status
	limit    int
	offset   int

	guard guard.ConstructorGuard
}

// NewListDonationsQuery validates paging. A zero limit selects DefaultListLimit.
func NewListDonationsQuery(
	actor kernel.Actor,
	statuses []donation.Status,
	limit, offset int,
) (ListDonationsQuery, error) {
	if err := validateActor(actor); err != nil {
		return ListDonationsQuery{}, err
	}

	var problems []error
	for _, status := range statuses {
		if err := status.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		problems = append(problems, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit))
	}
	if offset < 0 {
		problems = append(problems, errs.NewValueIsInvalidError("offset"))
	}
	if err := errors.Join(problems...); err != nil {
		return ListDonationsQuery{}, errs.NewInvalidInputError("listing parameters are invalid", err)
	}

	return ListDonationsQuery{
		actor:    actor,
		statuses: slices.Clone(statuses),
		limit:    limit,
		offset:   offset,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListDonationsQuery) Validate() error {
	return q.guard.Validate(ErrListDonationsQueryIsNotConstructed)
}

func (q ListDonationsQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListDonationsQuery) Statuses() []donation.Status {
	return slices.Clone(q.statuses)
}

func (q ListDonationsQuery) Limit() int {
	return q.limit
}

func (q ListDonationsQuery) Offset() int {
	return q.offset
}
