// Package donation provides the Donation aggregate and the lifecycle rules that
// govern it.
//
// The package includes:
//   - Donation: the aggregate root tracked end-to-end from publication to delivery
//   - Status: the seven lifecycle states
//   - Event: the actor-initiated events that move a donation between states
//   - Transition: the pure state machine mapping (status, event, role) to the next status
//   - Details, PickupVerification, DeliveryVerification: value objects carried by the record
//   - IssueReport: an out-of-band courier annotation that never changes status
//   - LifecycleEvent: the notification emitted after a committed transition
//
// Key business rules:
//   - Status moves along Pending -> Claimed -> Assigned -> PickedUp -> InTransit -> Delivered
//     with a branch to Canceled from every non-terminal state; there are no back-edges
//   - Exactly one organization claims a donation and exactly one courier is assigned to it
//   - Delivered and Canceled are terminal; every event is rejected afterwards
//   - Version grows by one on every successful transition and is the
//     optimistic-concurrency token used by the stores
package donation
