package order

// transition is one directed edge of the order state machine.
type transition struct {
	from Status
	to   Status
}

// transitionRoles is the single authoritative table of legal status edges
// and the roles allowed to take them. Every status mutation in the system
// is checked here; no handler or adapter re-derives legality on its own.
//
// Edges taken by RoleWasher or RolePartner additionally require the acting
// fulfiller to be the one assigned to the order (enforced by Order.TransitionTo),
// except confirmed→assigned which is only reachable through the claim
// compare-and-swap.
var transitionRoles = map[transition][]Role{
	// Payment reconciler confirms paid orders and handles retried payments.
	{StatusPending, StatusConfirmed}:       {RoleSystem},
	{StatusFailedPayment, StatusConfirmed}: {RoleSystem},

	// Claiming: exactly one fulfiller wins the conditional write.
	{StatusConfirmed, StatusAssigned}: {RoleWasher, RolePartner},

	// Release-and-reclaim: back-office returns a claimed order to the pool.
	{StatusAssigned, StatusConfirmed}: {RoleAdmin},

	// Fulfilment flow, bound to the assigned fulfiller.
	{StatusAssigned, StatusInProgress}: {RoleWasher, RolePartner},
	{StatusInProgress, StatusReady}:    {RoleWasher, RolePartner},
	{StatusReady, StatusCompleted}:     {RoleWasher, RolePartner, RoleAdmin},

	// Cancellation before work starts is open to the client; afterwards
	// only back-office can cancel. RoleSystem covers payment expiry and
	// the stale-pending sweep.
	{StatusPending, StatusCancelled}:       {RoleClient, RoleAdmin, RoleSystem},
	{StatusConfirmed, StatusCancelled}:     {RoleClient, RoleAdmin, RoleSystem},
	{StatusAssigned, StatusCancelled}:      {RoleClient, RoleAdmin},
	{StatusInProgress, StatusCancelled}:    {RoleAdmin},
	{StatusReady, StatusCancelled}:         {RoleAdmin},
	{StatusFailedPayment, StatusCancelled}: {RoleClient, RoleAdmin, RoleSystem},

	// Payment failure reported by the provider.
	{StatusPending, StatusFailedPayment}:   {RoleSystem},
	{StatusConfirmed, StatusFailedPayment}: {RoleSystem},
}

// fulfillerBound lists the edges a washer/partner may only take on an order
// assigned to them. Admin overrides are exempt.
var fulfillerBound = map[transition]bool{
	{StatusAssigned, StatusInProgress}: true,
	{StatusInProgress, StatusReady}:    true,
	{StatusReady, StatusCompleted}:     true,
}

// allowedRoles returns the roles permitted to take the edge, or nil when the
// edge is not defined by the state machine.
func allowedRoles(from, to Status) []Role {
	return transitionRoles[transition{from: from, to: to}]
}

// roleMayTransition reports whether the role appears in the edge's role list.
func roleMayTransition(from, to Status, role Role) bool {
	for _, allowed := range allowedRoles(from, to) {
		if allowed == role {
			return true
		}
	}
	return false
}
