// Package kernel provides the shared domain primitives of the donation coordinator.
//
// The package includes:
//   - UUID: a value object for entity identifiers (donations, donors, organizations, couriers)
//   - Role: the three actor roles (Donor, NGO, Courier)
//   - Actor: the (id, role) pair supplied by the identity provider for every request
//
// These primitives are immutable and safe for concurrent use. Their zero values are
// invalid and are rejected by Validate, so an actor or identifier that was never
// resolved cannot slip through to the lifecycle rules.
package kernel
