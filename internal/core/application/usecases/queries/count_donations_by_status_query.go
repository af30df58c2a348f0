package queries

import (
	"errors"

	"connectfood/internal/pkg/guard"
)

var ErrCountDonationsByStatusQueryIsNotConstructed = errors.New(
	"CountDonationsByStatusQuery must be created via NewCountDonationsByStatusQuery constructor",
)

// CountDonationsByStatusQuery aggregates the store for dashboards and metrics.
// It carries no role view: every donation is counted.
type CountDonationsByStatusQuery struct {
	guard guard.ConstructorGuard
}

func NewCountDonationsByStatusQuery() CountDonationsByStatusQuery {
	return CountDonationsByStatusQuery{guard: guard.NewConstructorGuard()}
}

func (q CountDonationsByStatusQuery) Validate() error {
	return q.guard.Validate(ErrCountDonationsByStatusQueryIsNotConstructed)
}
