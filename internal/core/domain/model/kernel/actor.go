package kernel

import (
	"errors"
	"fmt"
	"strings"

	"connectfood/internal/pkg/errs"
)

// Role is the capacity in which an actor issues a lifecycle event.
//
// A single person may hold several roles (an NGO volunteer who also drives),
// so the role travels with every request instead of being derived from the account.
type Role int

const (
	// UnknownRole is the zero value and is never authorized for anything.
	UnknownRole Role = iota

	// Donor publishes donations and may cancel them while they are still pending.
	Donor

	// NGO is a recipient organization: it claims donations and assigns couriers.
	NGO

	// Courier transports a donation and performs the pickup and drop-off hand-offs.
	Courier
)

var roleNames = map[Role]string{
	Donor:   "donor",
	NGO:     "ngo",
	Courier: "courier",
}

// ParseRole accepts the lower-case role names used on the wire ("donor", "ngo", "courier").
func ParseRole(s string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for role, name := range roleNames {
		if name == normalized {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

// String returns the wire name of the role, or "unknown".
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Validate rejects UnknownRole and out-of-range values.
func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Actor is the caller of a lifecycle operation as resolved by the identity provider.
// The coordinator trusts it and never re-derives it.
type Actor struct {
	id   UUID
	role Role
}

// NewActor validates and builds an Actor.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// ID returns the actor's identifier.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the role the actor is acting in.
func (a Actor) Role() Role {
	return a.role
}

// Is reports whether the actor holds the given role and identifier.
func (a Actor) Is(role Role, id UUID) bool {
	return a.role == role && a.id.IsEqual(id)
}

// Validate rejects the zero Actor.
func (a Actor) Validate() error {
	return errors.Join(a.id.Validate(), a.role.Validate())
}

// String renders "role:id", handy in log attributes.
func (a Actor) String() string {
	return a.role.String() + ":" + a.id.String()
}
