// Package postgres wires the GORM repositories of the primary store.
//
// Every write is a single statement: donations change through a conditional
// UPDATE on (id, version), so no repository call opens a transaction and no
// lock is held across calls.
//
// Usage:
//
//	db, err := postgres.Open(cfg.DSN())
//	if err != nil {
//	    return err
//	}
//	storage := postgres.NewStorage(db)
//	if err := storage.Migrate(ctx); err != nil {
//	    return err
//	}
//	arb, err := arbiter.New(storage.DonationRepository(), clock)
package postgres

import (
	"context"
	"fmt"

	"connectfood/internal/adapters/out/postgres/donationrepo"
	"connectfood/internal/adapters/out/postgres/issuerepo"
	"connectfood/internal/core/ports"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to PostgreSQL. GORM's own query logging is silenced; the
// service logs at its boundaries.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// Storage hands out repositories sharing one connection pool.
type Storage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

// Migrate creates or updates the donations and donation_issues tables.
func (s *Storage) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&donationrepo.DonationDTO{}, &issuerepo.IssueDTO{})
}

func (s *Storage) DonationRepository() ports.DonationStore {
	return donationrepo.NewGormDonationRepository(s.db)
}

func (s *Storage) IssueRepository() ports.IssueRepository {
	return issuerepo.NewGormIssueRepository(s.db)
}

// Ping checks that the database answers.
func (s *Storage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
