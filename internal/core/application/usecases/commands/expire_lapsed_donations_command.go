package commands

import (
	"errors"

	"connectfood/internal/pkg/errs"
	"connectfood/internal/pkg/guard"
)

const (
	DefaultSweepBatchSize = 100
	maxSweepBatchSize     = 1000
)

var ErrExpireLapsedDonationsCommandIsNotConstructed = errors.New(
	"ExpireLapsedDonationsCommand must be created via NewExpireLapsedDonationsCommand constructor",
)

// ExpireLapsedDonationsCommand sweeps Pending and Claimed donations past their
// expiry. Reads expire donations lazily; the sweep makes sure participants are
// told even when nobody reads.
type ExpireLapsedDonationsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

// NewExpireLapsedDonationsCommand creates the sweep. A zero batchSize selects
// DefaultSweepBatchSize.
func NewExpireLapsedDonationsCommand(batchSize int) (ExpireLapsedDonationsCommand, error) {
	if batchSize == 0 {
		batchSize = DefaultSweepBatchSize
	}
	if batchSize < 1 || batchSize > maxSweepBatchSize {
		return ExpireLapsedDonationsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, maxSweepBatchSize)
	}

	return ExpireLapsedDonationsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ExpireLapsedDonationsCommand) Validate() error {
	return c.guard.Validate(ErrExpireLapsedDonationsCommandIsNotConstructed)
}

func (c ExpireLapsedDonationsCommand) BatchSize() int {
	return c.batchSize
}
