package mongostore

import (
	"context"
	"errors"
	"fmt"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/ports"
	"connectfood/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ ports.DonationStore = (*DonationRepository)(nil)

type DonationRepository struct {
	col *mongo.Collection
}

func NewDonationRepository(col *mongo.Collection) *DonationRepository {
	return &DonationRepository{col: col}
}

func (r *DonationRepository) Add(ctx context.Context, d *donation.Donation) error {
	if err := d.Validate(); err != nil {
		return err
	}

	if _, err := r.col.InsertOne(ctx, toDocument(d)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.NewConflictError(fmt.Sprintf("donation %s already exists", d.ID()))
		}
		return err
	}
	return nil
}

func (r *DonationRepository) Get(ctx context.Context, id kernel.UUID) (*donation.Donation, error) {
	var doc donationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NewObjectNotFoundError("donation", id.String())
		}
		return nil, err
	}
	return fromDocument(doc)
}

// CompareAndSet replaces the document only while its version is still
// expectedVersion.
func (r *DonationRepository) CompareAndSet(ctx context.Context, expectedVersion int64, next *donation.Donation) (bool, error) {
	if err := next.Validate(); err != nil {
		return false, err
	}

	id := next.ID().String()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": id, "version": expectedVersion}, toDocument(next))
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 1 {
		return true, nil
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, errs.NewObjectNotFoundError("donation", id)
	}
	return false, nil
}

func (r *DonationRepository) List(ctx context.Context, filter ports.DonationFilter) ([]*donation.Donation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.col.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, err
	}

	var docs []donationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	result := make([]*donation.Donation, 0, len(docs))
	for _, doc := range docs {
		d, err := fromDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("donation %s: %w", doc.ID, err)
		}
		result = append(result, d)
	}
	return result, nil
}

func (r *DonationRepository) CountByStatus(ctx context.Context) (map[donation.Status]int64, error) {
	cursor, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Status int   `bson:"_id"`
		Total  int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[donation.Status]int64, len(rows))
	for _, row := range rows {
		counts[donation.Status(row.Status)] = row.Total
	}
	return counts, nil
}

// buildFilter mirrors the participant semantics of ports.DonationFilter:
// statuses always apply, and IncludeAvailable ORs pending donations into the
// participant conditions.
func buildFilter(f ports.DonationFilter) bson.M {
	query := bson.M{}
	if len(f.Statuses) > 0 {
		statuses := make([]int, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, int(s))
		}
		query["status"] = bson.M{"$in": statuses}
	}

	var participant bson.A
	if f.DonorID != nil {
		participant = append(participant, bson.M{"donor_id": f.DonorID.String()})
	}
	if f.ClaimedBy != nil {
		participant = append(participant, currentOrPrior("claimed_by", "cancellation.prior_claimant", f.ClaimedBy.String()))
	}
	if f.AssignedCourier != nil {
		participant = append(participant, currentOrPrior("assigned_courier", "cancellation.prior_courier", f.AssignedCourier.String()))
	}
	if len(participant) == 0 {
		return query
	}

	if f.IncludeAvailable {
		query["$or"] = bson.A{bson.M{"status": int(donation.Pending)}, bson.M{"$and": participant}}
		return query
	}
	query["$and"] = participant
	return query
}

func currentOrPrior(current, prior, id string) bson.M {
	return bson.M{"$or": bson.A{bson.M{current: id}, bson.M{prior: id}}}
}
