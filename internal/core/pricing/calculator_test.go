package pricing_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/sitterbook/internal/core/domain"
	"github.com/srgjo27/sitterbook/internal/core/pricing"
)

func TestComputeCost_ThreeNightsWithAddon(t *testing.T) {
	got, err := pricing.ComputeCost(pricing.Input{
		Nights:        3,
		BaseRateCents: 5000,
		AddonsCents:   []int64{3000},
		Tiers:         []domain.DiscountTier{{MinNights: 7, PercentBps: 1000}},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CostBreakdown{
		Nights:                3,
		NightlyRateCents:      5000,
		BaseSubtotalCents:     15000,
		AddonsTotalCents:      3000,
		DiscountPercentBps:    0,
		DiscountCents:         0,
		SubtotalCents:         18000,
		OwnerServiceFeeCents:  1260,
		TotalCostCents:        19260,
		SitterCommissionCents: 2250,
		PlatformFeeCents:      3510,
		SitterPayoutCents:     15750,
	}, got)
}

func TestComputeCost_DiscountOnlyOnBase(t *testing.T) {
	got, err := pricing.ComputeCost(pricing.Input{
		Nights:        10,
		BaseRateCents: 4000,
		AddonsCents:   []int64{2500, 500},
		Tiers:         []domain.DiscountTier{{MinNights: 7, PercentBps: 1000}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(40000), got.BaseSubtotalCents)
	assert.Equal(t, int64(3000), got.AddonsTotalCents)
	assert.Equal(t, int64(4000), got.DiscountCents)
	assert.Equal(t, int64(39000), got.SubtotalCents)
	assert.Equal(t, int64(2730), got.OwnerServiceFeeCents)
	assert.Equal(t, int64(41730), got.TotalCostCents)
	assert.Equal(t, int64(6000), got.SitterCommissionCents)
	assert.Equal(t, int64(8730), got.PlatformFeeCents)
	assert.Equal(t, int64(33000), got.SitterPayoutCents)
}

func TestComputeCost_TierTieBreakPrefersLongestStayTier(t *testing.T) {
	tiers := []domain.DiscountTier{
		{MinNights: 14, PercentBps: 1500},
		{MinNights: 7, PercentBps: 1000},
	}

	got, err := pricing.ComputeCost(pricing.Input{Nights: 14, BaseRateCents: 1000, Tiers: tiers})
	require.NoError(t, err)
	assert.Equal(t, int64(1500), got.DiscountPercentBps)
	assert.Equal(t, int64(2100), got.DiscountCents)

	got, err = pricing.ComputeCost(pricing.Input{Nights: 13, BaseRateCents: 1000, Tiers: tiers})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.DiscountPercentBps)
}

func TestSelectTier_BestMatchNotBestPercentage(t *testing.T) {
	tier, ok := pricing.SelectTier(30, []domain.DiscountTier{
		{MinNights: 3, PercentBps: 2500},
		{MinNights: 28, PercentBps: 500},
	})
	require.True(t, ok)
	assert.Equal(t, 28, tier.MinNights)

	_, ok = pricing.SelectTier(2, []domain.DiscountTier{{MinNights: 3, PercentBps: 2500}})
	assert.False(t, ok)
}

func TestComputeCost_RoundsHalfUpPerStep(t *testing.T) {
	// 1 night at 1050: commission 157.5 -> 158, owner fee 73.5 -> 74.
	got, err := pricing.ComputeCost(pricing.Input{Nights: 1, BaseRateCents: 1050})
	require.NoError(t, err)
	assert.Equal(t, int64(158), got.SitterCommissionCents)
	assert.Equal(t, int64(74), got.OwnerServiceFeeCents)
	assert.Equal(t, int64(1124), got.TotalCostCents)
	assert.Equal(t, int64(232), got.PlatformFeeCents)
	assert.Equal(t, int64(892), got.SitterPayoutCents)

	// discount of 12.5% on 1004 = 125.5 -> 126
	got, err = pricing.ComputeCost(pricing.Input{
		Nights:        1,
		BaseRateCents: 1004,
		Tiers:         []domain.DiscountTier{{MinNights: 1, PercentBps: 1250}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(126), got.DiscountCents)
}

func TestComputeCost_Deterministic(t *testing.T) {
	in := pricing.Input{
		Nights:        9,
		BaseRateCents: 3333,
		AddonsCents:   []int64{999, 1},
		Tiers:         []domain.DiscountTier{{MinNights: 5, PercentBps: 750}},
	}

	first, err := pricing.ComputeCost(in)
	require.NoError(t, err)
	second, err := pricing.ComputeCost(in)
	require.NoError(t, err)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	assert.Equal(t, a, b)
}

func TestComputeCost_Invariants(t *testing.T) {
	got, err := pricing.ComputeCost(pricing.Input{
		Nights:        21,
		BaseRateCents: 4599,
		AddonsCents:   []int64{1250, 3333},
		Tiers:         []domain.DiscountTier{{MinNights: 14, PercentBps: 1500}},
	})
	require.NoError(t, err)

	assert.Equal(t, got.TotalCostCents, got.SitterPayoutCents+got.PlatformFeeCents)
	assert.Equal(t, got.SubtotalCents, got.BaseSubtotalCents+got.AddonsTotalCents-got.DiscountCents)
}

func TestComputeCost_RejectsInvalidInput(t *testing.T) {
	cases := map[string]pricing.Input{
		"zero nights":    {Nights: 0, BaseRateCents: 100},
		"negative rate":  {Nights: 1, BaseRateCents: -1},
		"negative addon": {Nights: 1, BaseRateCents: 100, AddonsCents: []int64{-5}},
		"tier over 100%": {Nights: 1, BaseRateCents: 100, Tiers: []domain.DiscountTier{{MinNights: 1, PercentBps: 10001}}},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := pricing.ComputeCost(in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestRecompute_MatchesOriginal(t *testing.T) {
	addons := []domain.AppliedAddon{{Name: "Walk", PriceCents: 1500}, {Name: "Bath", PriceCents: 2000}}
	original, err := pricing.ComputeCost(pricing.Input{
		Nights:        15,
		BaseRateCents: 4200,
		AddonsCents:   domain.AddonPrices(addons),
		Tiers:         []domain.DiscountTier{{MinNights: 7, PercentBps: 1000}, {MinNights: 14, PercentBps: 1500}},
	})
	require.NoError(t, err)

	again, err := pricing.Recompute(original, addons)
	require.NoError(t, err)
	assert.Equal(t, original, again)
}
