package order

import (
	"fmt"

	"pressing/internal/pkg/errs"
)

// Role identifies which kind of actor is requesting an order mutation.
// Authorization for every status edge is resolved against the transition
// table using this role plus, for fulfiller-bound edges, the actor identity.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleClient is the customer who created the order.
	RoleClient

	// RolePartner is a storefront pressing fulfilling orders at a fixed location.
	RolePartner

	// RoleWasher is an individual fulfiller who claims orders without a storefront.
	RoleWasher

	// RoleAdmin is back-office staff with override powers for dispute resolution.
	RoleAdmin

	// RoleSystem is the internal actor used by the payment reconciler and
	// the stale-order sweep. Never assigned to an HTTP session.
	RoleSystem
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RoleClient:  "client",
		RolePartner: "partner",
		RoleWasher:  "washer",
		RoleAdmin:   "admin",
		RoleSystem:  "system",
	}
}

// Validate checks that the Role value is one of the defined actor roles.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", int(r)))
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", int(r)))
	}
	return nil
}

// String returns the wire name of the role, e.g. "washer".
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// RoleFromString parses a wire role name into a Role value.
// RoleSystem is deliberately not parseable from external input: the
// reconciler and sweep construct it directly.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if name == s && role != RoleUnknown && role != RoleSystem {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// IsFulfiller reports whether the role takes ownership of orders.
func (r Role) IsFulfiller() bool {
	return r == RoleWasher || r == RolePartner
}
