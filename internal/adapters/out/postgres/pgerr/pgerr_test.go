package pgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"connectfood/internal/adapters/out/postgres/pgerr"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "donations_pkey"})

	constraint, ok := pgerr.IsUniqueViolation(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "donations_pkey", constraint)

	_, ok = pgerr.IsUniqueViolation(&pgconn.PgError{Code: "23503"})
	assert.False(t, ok)

	_, ok = pgerr.IsUniqueViolation(errors.New("boom"))
	assert.False(t, ok)
}
