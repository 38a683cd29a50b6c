// Package fulfiller provides the Washer and Partner aggregates: the two
// mutually exclusive fulfilment paths of the marketplace. Washers are
// individuals who claim orders and manage their own availability; partners
// are storefront pressings with a per-partner commission tier. Claim
// eligibility (CanClaim) is evaluated here; the claim race itself is
// resolved by the order repository's conditional write.
package fulfiller
