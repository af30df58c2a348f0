package guard_test

import (
	"errors"
	"testing"

	"connectfood/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})
}

func TestConstructorGuard_EmbeddedInValue(t *testing.T) {
	type pickupSlot struct {
		label string
		guard guard.ConstructorGuard
	}
	errSlotNotConstructed := errors.New("pickupSlot must be created via newPickupSlot")

	newPickupSlot := func(label string) (pickupSlot, error) {
		if label == "" {
			return pickupSlot{}, errors.New("label is required")
		}
		return pickupSlot{label: label, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_sets_guard", func(t *testing.T) {
		slot, err := newPickupSlot("morning")
		require.NoError(t, err)
		require.NoError(t, slot.guard.Validate(errSlotNotConstructed))
	})

	t.Run("literal_bypasses_constructor", func(t *testing.T) {
		slot := pickupSlot{label: "evening"}
		require.ErrorIs(t, slot.guard.Validate(errSlotNotConstructed), errSlotNotConstructed)
	})

	t.Run("failed_constructor_returns_zero_value", func(t *testing.T) {
		slot, err := newPickupSlot("")
		require.Error(t, err)
		require.ErrorIs(t, slot.guard.Validate(errSlotNotConstructed), errSlotNotConstructed)
	})
}
