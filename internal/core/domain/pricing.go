package domain

// CostBreakdown is the full money picture of a stay, all amounts in cents.
type CostBreakdown struct {
	Nights                int   `json:"nights"`
	NightlyRateCents      int64 `json:"nightly_rate_cents"`
	BaseSubtotalCents     int64 `json:"base_subtotal_cents"`
	AddonsTotalCents      int64 `json:"addons_total_cents"`
	DiscountPercentBps    int64 `json:"discount_percent_bps"`
	DiscountCents         int64 `json:"discount_cents"`
	SubtotalCents         int64 `json:"subtotal_cents"`
	OwnerServiceFeeCents  int64 `json:"owner_service_fee_cents"`
	TotalCostCents        int64 `json:"total_cost_cents"`
	SitterCommissionCents int64 `json:"sitter_commission_cents"`
	PlatformFeeCents      int64 `json:"platform_fee_cents"`
	SitterPayoutCents     int64 `json:"sitter_payout_cents"`
}
