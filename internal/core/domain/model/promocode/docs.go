// Package promocode provides the PromoCode aggregate and Usage records for
// marketing discount codes.
//
// Redemption rules (active, expiry, usage cap, per-user single use) are
// evaluated by PromoCode.CheckRedeemable and surface as reasons wrapping
// ErrPromoInvalid. The usage cap itself is race-safe only through the
// repository's conditional increment; the aggregate states the invariant,
// the database enforces it under concurrency.
package promocode
