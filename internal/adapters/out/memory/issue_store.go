package memory

import (
	"context"
	"slices"
	"sync"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/ports"
	"connectfood/internal/pkg/errs"
)

var _ ports.IssueRepository = (*IssueStore)(nil)

type IssueStore struct {
	mu     sync.RWMutex
	issues map[string][]donation.IssueReport
}

func NewIssueStore() *IssueStore {
	return &IssueStore{issues: make(map[string][]donation.IssueReport)}
}

func (s *IssueStore) Add(ctx context.Context, report donation.IssueReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if report.ID == "" {
		return errs.NewValueIsRequiredError("id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := report.DonationID.String()
	s.issues[key] = append(s.issues[key], report)
	return nil
}

func (s *IssueStore) ListByDonation(ctx context.Context, donationID kernel.UUID) ([]donation.IssueReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := slices.Clone(s.issues[donationID.String()])
	slices.SortStableFunc(reports, func(a, b donation.IssueReport) int {
		return a.ReportedAt.Compare(b.ReportedAt)
	})
	return reports, nil
}
