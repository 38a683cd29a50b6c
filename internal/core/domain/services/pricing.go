package services

import (
	"errors"
	"fmt"
	"math"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/errs"
)

// ErrNoRateForServiceType is returned when the rate table has no entry for
// the requested service tier.
var ErrNoRateForServiceType = errors.New("no rate configured for service type")

// Breakdown is the monetary decomposition of an order.
// All amounts are tax-inclusive euro cents. PayoutAmount and
// CommissionAmount are zero until computed at completion, and always satisfy
// PayoutAmount + CommissionAmount == Total.
type Breakdown struct {
	Subtotal         kernel.Money
	DiscountAmount   kernel.Money
	Tax              kernel.Money
	Total            kernel.Money
	PayoutAmount     kernel.Money
	CommissionAmount kernel.Money
}

// PricingConfig carries the authoritative rate table.
// There is exactly one of these per process; dashboards and payout
// statements must not carry their own percentages.
type PricingConfig struct {
	// RatesPerKg maps service tiers to tax-inclusive per-kilogram prices.
	RatesPerKg map[order.ServiceType]kernel.Money

	// TaxRate is the VAT fraction included in all prices, e.g. 0.20.
	TaxRate float64

	// WasherPayoutRate is the washer's share of a completed order's total,
	// e.g. 0.60.
	WasherPayoutRate float64
}

// DefaultPricingConfig returns the production rate table:
// standard 5€/kg, express 10€/kg, ultra 15€/kg, 20% VAT, 60% washer payout.
func DefaultPricingConfig() PricingConfig {
	mustMoney := func(cents int64) kernel.Money {
		m, err := kernel.NewMoney(cents)
		if err != nil {
			panic(err)
		}
		return m
	}

	return PricingConfig{
		RatesPerKg: map[order.ServiceType]kernel.Money{
			order.ServiceStandard: mustMoney(500),
			order.ServiceExpress:  mustMoney(1000),
			order.ServiceUltra:    mustMoney(1500),
		},
		TaxRate:          0.20,
		WasherPayoutRate: 0.60,
	}
}

// PricingCalculator computes order totals and completion payout splits.
// It is a pure domain service: no I/O, no clocks, deterministic for a given
// configuration. Malformed input is a programming error and returns
// validation errors loudly rather than producing a zero breakdown.
type PricingCalculator struct {
	config PricingConfig
}

// NewPricingCalculator creates a calculator for the given rate table.
func NewPricingCalculator(config PricingConfig) (*PricingCalculator, error) {
	if len(config.RatesPerKg) == 0 {
		return nil, errs.NewValueIsRequiredError("rates per kg")
	}
	if config.TaxRate < 0 || config.TaxRate >= 1 {
		return nil, errs.NewValueIsOutOfRangeError("tax rate", config.TaxRate, 0, 1)
	}
	if config.WasherPayoutRate <= 0 || config.WasherPayoutRate >= 1 {
		return nil, errs.NewValueIsOutOfRangeError("washer payout rate", config.WasherPayoutRate, 0, 1)
	}

	return &PricingCalculator{config: config}, nil
}

// Quote returns the tax-inclusive subtotal for a service tier and weight:
// rate(tier) × weight, rounded to the cent.
func (c *PricingCalculator) Quote(serviceType order.ServiceType, weightKg float64) (kernel.Money, error) {
	if err := serviceType.Validate(); err != nil {
		return kernel.Money{}, err
	}
	if weightKg <= 0 {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%f is not greater than 0", weightKg))
	}

	rate, ok := c.config.RatesPerKg[serviceType]
	if !ok {
		return kernel.Money{}, fmt.Errorf("%w: %s", ErrNoRateForServiceType, serviceType)
	}

	return rate.MulWeight(weightKg), nil
}

// Price computes subtotal, discount, tax, and total for an order.
// The discount is an absolute amount (already resolved from a promo code);
// it is floored so the total never goes negative. Tax is the VAT portion of
// the tax-inclusive total: total − total/(1+rate).
func (c *PricingCalculator) Price(
	serviceType order.ServiceType,
	weightKg float64,
	discount kernel.Money,
) (Breakdown, error) {
	subtotal, err := c.Quote(serviceType, weightKg)
	if err != nil {
		return Breakdown{}, err
	}

	total := subtotal.SubFloored(discount)
	applied := subtotal.SubFloored(total) // capped at subtotal when discount exceeds it

	return Breakdown{
		Subtotal:       subtotal,
		DiscountAmount: applied,
		Tax:            c.taxPortion(total),
		Total:          total,
	}, nil
}

// Compute is the full completion-time calculation: Price plus the payout
// split for the fulfilling role. partnerTier is the platform's cut for a
// partner order in [0, 1) and is ignored for washers.
//
// Call this with the final weight and the final discount recorded at
// weigh-in, never the client's creation-time estimate.
func (c *PricingCalculator) Compute(
	serviceType order.ServiceType,
	weightKg float64,
	discount kernel.Money,
	role order.Role,
	partnerTier float64,
) (Breakdown, error) {
	breakdown, err := c.Price(serviceType, weightKg, discount)
	if err != nil {
		return Breakdown{}, err
	}

	payout, commission, err := c.Split(breakdown.Total, role, partnerTier)
	if err != nil {
		return Breakdown{}, err
	}

	breakdown.PayoutAmount = payout
	breakdown.CommissionAmount = commission
	return breakdown, nil
}

// Split divides a completed order's total between the fulfiller payout and
// the platform commission. Washers receive the configured payout rate;
// partners receive (1 − tier) of the total. The commission is computed as
// the exact remainder so the split always sums to the total.
func (c *PricingCalculator) Split(total kernel.Money, role order.Role, partnerTier float64) (payout, commission kernel.Money, err error) {
	var payoutRate float64
	switch role {
	case order.RoleWasher:
		payoutRate = c.config.WasherPayoutRate
	case order.RolePartner:
		if partnerTier < 0 || partnerTier >= 1 {
			return kernel.Money{}, kernel.Money{}, errs.NewValueIsOutOfRangeError("partner tier", partnerTier, 0, 1)
		}
		payoutRate = 1 - partnerTier
	default:
		return kernel.Money{}, kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%s does not receive payouts", role))
	}

	payout = total.Percent(payoutRate * 100)
	commission = total.SubFloored(payout)
	return payout, commission, nil
}

// taxPortion extracts the VAT part of a tax-inclusive amount.
func (c *PricingCalculator) taxPortion(total kernel.Money) kernel.Money {
	excluded := int64(math.Round(float64(total.Cents()) / (1 + c.config.TaxRate)))
	tax, err := kernel.NewMoney(total.Cents() - excluded)
	if err != nil {
		// total/(1+rate) <= total for rate >= 0, so this cannot go negative.
		panic(err)
	}
	return tax
}
