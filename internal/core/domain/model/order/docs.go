// Package order provides domain entities and business logic for the order
// lifecycle of the pressing marketplace. It implements the Order aggregate
// root with an explicit, role-aware status state machine.
//
// The package includes:
//   - Order: The aggregate root managing identity, fulfilment, pricing fields, and lifecycle
//   - Status / PaymentStatus / ServiceType / Role: tagged enums with wire names
//   - The transition table: the single authoritative map of legal status edges per role
//   - StatusChange: append-only audit entries flushed with each transition
//
// All status mutations flow through Order.TransitionTo, Order.Claim, or the
// payment-reconciliation appliers; nothing outside this package decides
// whether an edge is legal. Concurrency is the repository's concern: the
// aggregate carries the optimistic-concurrency version and the claim
// precondition, the conditional SQL writes arbitrate races.
package order
