// Package services contains stateless domain services that operate across
// aggregates.
//
// PricingCalculator is the single source of truth for money in the system:
// tax-inclusive per-kilogram rates, VAT extraction, promo discounts, and the
// payout/commission split paid out when an order completes. Every amount it
// produces is integer euro cents; the payout and commission of a split always
// sum back to the order total exactly.
package services
