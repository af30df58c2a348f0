package donation

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"connectfood/internal/pkg/errs"
)

// FoodType classifies the donated food.
type FoodType string

const (
	FoodCooked   FoodType = "cooked"
	FoodRaw      FoodType = "raw"
	FoodPackaged FoodType = "packaged"
	FoodBakery   FoodType = "bakery"
	FoodProduce  FoodType = "produce"
	FoodDairy    FoodType = "dairy"
	FoodOther    FoodType = "other"
)

// Unit is the unit Quantity is expressed in.
type Unit string

const (
	UnitKilogram Unit = "kg"
	UnitGram     Unit = "g"
	UnitLiter    Unit = "l"
	UnitServings Unit = "servings"
	UnitItems    Unit = "items"
	UnitBoxes    Unit = "boxes"
)

const (
	minFoodNameLength     = 3
	minAddressLength      = 5
	minContactNameLength  = 2
	minContactPhoneDigits = 10
	maxItems              = 100
)

var (
	validFoodTypes = map[FoodType]struct{}{
		FoodCooked: {}, FoodRaw: {}, FoodPackaged: {}, FoodBakery: {}, FoodProduce: {}, FoodDairy: {}, FoodOther: {},
	}
	validUnits = map[Unit]struct{}{
		UnitKilogram: {}, UnitGram: {}, UnitLiter: {}, UnitServings: {}, UnitItems: {}, UnitBoxes: {},
	}
)

// Item is one declared line of a donation. The courier's pickup checklist is
// verified against the declared items by ID.
type Item struct {
	ID       string
	Name     string
	Quantity string
}

// Pickup holds where and when the courier collects the donation.
type Pickup struct {
	Address      string
	ContactName  string
	ContactPhone string
	WindowStart  *time.Time
	WindowEnd    *time.Time
	Instructions string
}

// Details is what the donor publishes. It is validated once at creation and is
// immutable afterwards.
type Details struct {
	FoodType            FoodType
	FoodName            string
	Quantity            float64
	Unit                Unit
	Items               []Item
	PreparedAt          *time.Time
	Pickup              Pickup
	SpecialInstructions string
}

// Validate checks the shape of the details and reports every offending field at
// once, joined with errors.Join. Field names are prefixed with "details.".
func (d Details) Validate() error {
	var problems []error

	if _, ok := validFoodTypes[d.FoodType]; !ok {
		if d.FoodType == "" {
			problems = append(problems, errs.NewValueIsRequiredError("details.foodType"))
		} else {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"details.foodType", fmt.Errorf("%q is not a known food type", d.FoodType)))
		}
	}

	if len(strings.TrimSpace(d.FoodName)) < minFoodNameLength {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"details.foodName", fmt.Errorf("must be at least %d characters", minFoodNameLength)))
	}

	if !(d.Quantity > 0) || math.IsInf(d.Quantity, 1) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"details.quantity", fmt.Errorf("%v is not greater than 0", d.Quantity)))
	}

	if _, ok := validUnits[d.Unit]; !ok {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"details.unit", fmt.Errorf("%q is not a known unit", d.Unit)))
	}

	problems = append(problems, validateItems(d.Items), d.Pickup.validate())

	return errors.Join(problems...)
}

// ItemIDs returns the declared item IDs in declaration order.
func (d Details) ItemIDs() []string {
	ids := make([]string, 0, len(d.Items))
	for _, item := range d.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (d Details) clone() Details {
	c := d
	c.Items = append([]Item(nil), d.Items...)
	c.PreparedAt = cloneTime(d.PreparedAt)
	c.Pickup.WindowStart = cloneTime(d.Pickup.WindowStart)
	c.Pickup.WindowEnd = cloneTime(d.Pickup.WindowEnd)
	return c
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("details.items")
	}
	if len(items) > maxItems {
		return errs.NewValueIsOutOfRangeError("details.items", len(items), 1, maxItems)
	}

	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" || strings.TrimSpace(item.Name) == "" {
			return errs.NewValueIsInvalidErrorWithCause(
				"details.items", fmt.Errorf("item %d needs an id and a name", i))
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"details.items", fmt.Errorf("item id %q is declared twice", id))
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (p Pickup) validate() error {
	var problems []error

	if len(strings.TrimSpace(p.Address)) < minAddressLength {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"details.pickup.address", fmt.Errorf("must be at least %d characters", minAddressLength)))
	}

	if len(strings.TrimSpace(p.ContactName)) < minContactNameLength {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"details.pickup.contactName", fmt.Errorf("must be at least %d characters", minContactNameLength)))
	}

	if countDigits(p.ContactPhone) < minContactPhoneDigits {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"details.pickup.contactPhone", fmt.Errorf("must contain at least %d digits", minContactPhoneDigits)))
	}

	if p.WindowStart != nil && p.WindowEnd != nil && !p.WindowEnd.After(*p.WindowStart) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"details.pickup.windowEnd", errors.New("must be after windowStart")))
	}

	return errors.Join(problems...)
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
