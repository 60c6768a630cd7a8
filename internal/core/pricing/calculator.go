// Package pricing turns a stay and a sitter's pricing configuration into a
// cost breakdown. Everything here is pure integer arithmetic on cents.
package pricing

import (
	"fmt"

	"github.com/srgjo27/sitterbook/internal/core/domain"
)

const (
	// OwnerServiceFeeBps is charged to the customer on top of the subtotal.
	OwnerServiceFeeBps int64 = 700
	// SitterCommissionBps is retained from the base service only; add-ons
	// carry no commission.
	SitterCommissionBps int64 = 1500

	bpsDenominator int64 = 10000
)

type Input struct {
	Nights        int
	BaseRateCents int64
	AddonsCents   []int64
	Tiers         []domain.DiscountTier
}

// ComputeCost applies the platform pricing rules. Every fee is rounded
// half-up to the cent on its own.
func ComputeCost(in Input) (domain.CostBreakdown, error) {
	if err := in.validate(); err != nil {
		return domain.CostBreakdown{}, err
	}

	base := in.BaseRateCents * int64(in.Nights)

	var addons int64
	for _, a := range in.AddonsCents {
		addons += a
	}

	var discountBps int64
	if tier, ok := SelectTier(in.Nights, in.Tiers); ok {
		discountBps = tier.PercentBps
	}
	discount := applyBps(base, discountBps)

	subtotal := base + addons - discount
	ownerFee := applyBps(subtotal, OwnerServiceFeeBps)
	commission := applyBps(base, SitterCommissionBps)

	return domain.CostBreakdown{
		Nights:                in.Nights,
		NightlyRateCents:      in.BaseRateCents,
		BaseSubtotalCents:     base,
		AddonsTotalCents:      addons,
		DiscountPercentBps:    discountBps,
		DiscountCents:         discount,
		SubtotalCents:         subtotal,
		OwnerServiceFeeCents:  ownerFee,
		TotalCostCents:        subtotal + ownerFee,
		SitterCommissionCents: commission,
		PlatformFeeCents:      commission + ownerFee,
		SitterPayoutCents:     subtotal - commission,
	}, nil
}

// SelectTier picks the applicable tier with the largest MinNights, not the
// largest percentage.
func SelectTier(nights int, tiers []domain.DiscountTier) (domain.DiscountTier, bool) {
	var best domain.DiscountTier
	found := false
	for _, t := range tiers {
		if nights < t.MinNights {
			continue
		}
		if !found || t.MinNights > best.MinNights {
			best = t
			found = true
		}
	}
	return best, found
}

// Recompute rebuilds the breakdown of an accepted booking from its frozen
// snapshot. The frozen discount percentage stands in for the tier list.
func Recompute(frozen domain.CostBreakdown, addons []domain.AppliedAddon) (domain.CostBreakdown, error) {
	var tiers []domain.DiscountTier
	if frozen.DiscountPercentBps > 0 {
		tiers = []domain.DiscountTier{{MinNights: 1, PercentBps: frozen.DiscountPercentBps}}
	}
	return ComputeCost(Input{
		Nights:        frozen.Nights,
		BaseRateCents: frozen.NightlyRateCents,
		AddonsCents:   domain.AddonPrices(addons),
		Tiers:         tiers,
	})
}

func (in Input) validate() error {
	verr := &domain.ValidationError{Fields: map[string]string{}}
	if in.Nights < 1 {
		verr.Fields["nights"] = "must be at least 1"
	}
	if in.BaseRateCents < 0 {
		verr.Fields["base_rate_cents"] = "must not be negative"
	}
	for i, a := range in.AddonsCents {
		if a < 0 {
			verr.Fields[fmt.Sprintf("addons[%d]", i)] = "must not be negative"
		}
	}
	for i, t := range in.Tiers {
		if t.PercentBps < 0 || t.PercentBps > bpsDenominator {
			verr.Fields[fmt.Sprintf("tiers[%d]", i)] = "percentage must be between 0 and 100"
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// applyBps returns round-half-up(amount * bps / 10000) for non-negative
// amounts.
func applyBps(amount, bps int64) int64 {
	return (amount*bps + bpsDenominator/2) / bpsDenominator
}
