// Package mongostore implements the storage ports on MongoDB.
//
// A donation is one document keyed by its id. CompareAndSet is a ReplaceOne
// filtered on {_id, version}, which MongoDB applies atomically to a single
// document.
package mongostore

import (
	"context"
	"fmt"

	"connectfood/internal/core/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	donationsCollection = "donations"
	issuesCollection    = "donation_issues"
)

// Connect opens a client for uri and checks that the primary answers.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// Storage hands out repositories over one database.
type Storage struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewStorage(client *mongo.Client, database string) *Storage {
	return &Storage{client: client, db: client.Database(database)}
}

// EnsureIndexes creates the indexes the role views and issue listing use.
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(donationsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "donor_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "claimed_by", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "assigned_courier", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create donation indexes: %w", err)
	}

	_, err = s.db.Collection(issuesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "donation_id", Value: 1}, {Key: "reported_at", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create issue indexes: %w", err)
	}
	return nil
}

func (s *Storage) DonationRepository() ports.DonationStore {
	return NewDonationRepository(s.db.Collection(donationsCollection))
}

func (s *Storage) IssueRepository() ports.IssueRepository {
	return NewIssueRepository(s.db.Collection(issuesCollection))
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
