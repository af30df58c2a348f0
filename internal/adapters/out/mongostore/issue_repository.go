package mongostore

import (
	"context"
	"fmt"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/ports"
	"connectfood/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ ports.IssueRepository = (*IssueRepository)(nil)

type IssueRepository struct {
	col *mongo.Collection
}

func NewIssueRepository(col *mongo.Collection) *IssueRepository {
	return &IssueRepository{col: col}
}

func (r *IssueRepository) Add(ctx context.Context, report donation.IssueReport) error {
	if report.ID == "" {
		return errs.NewValueIsRequiredError("id")
	}
	if _, err := r.col.InsertOne(ctx, toIssueDocument(report)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.NewConflictError(fmt.Sprintf("issue %s already exists", report.ID))
		}
		return err
	}
	return nil
}

func (r *IssueRepository) ListByDonation(ctx context.Context, donationID kernel.UUID) ([]donation.IssueReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "reported_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"donation_id": donationID.String()}, opts)
	if err != nil {
		return nil, err
	}

	var docs []issueDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	reports := make([]donation.IssueReport, 0, len(docs))
	for _, doc := range docs {
		report, err := fromIssueDocument(doc)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
