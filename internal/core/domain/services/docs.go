// Package services provides domain services that apply business rules which
// need more than one piece of state to decide.
//
// The package includes:
//   - VerificationGate: checks a courier's pickup and drop-off evidence against
//     the donation's declared items before the state machine may advance
//
// Domain services are stateless and perform no I/O. They are called by the
// application layer from inside the lifecycle arbiter, so their verdict is
// always taken against the exact record version that is about to be replaced.
package services
