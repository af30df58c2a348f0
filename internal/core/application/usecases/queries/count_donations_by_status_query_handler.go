package queries

import (
	"context"

	"connectfood/internal/core/domain/model/donation"
)

type CountDonationsByStatusQueryHandler struct {
	counter StatusCounter
}

func NewCountDonationsByStatusQueryHandler(counter StatusCounter) CountDonationsByStatusQueryHandler {
	return CountDonationsByStatusQueryHandler{counter: counter}
}

// Handle returns a count for every lifecycle status, zero included.
func (h CountDonationsByStatusQueryHandler) Handle(
	ctx context.Context,
	query CountDonationsByStatusQuery,
) (map[donation.Status]int64, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	counts, err := h.counter.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[donation.Status]int64, len(donation.AllStatuses()))
	for _, status := range donation.AllStatuses() {
		result[status] = counts[status]
	}
	return result, nil
}
