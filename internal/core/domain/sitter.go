package domain

import (
	"github.com/google/uuid"
)

type Sitter struct {
	ID     uuid.UUID
	Name   string
	Email  string
	Active bool
}

type ServiceListing struct {
	ID        uuid.UUID
	SitterID  uuid.UUID
	Name      string
	RateCents int64
	Primary   bool
}

type Addon struct {
	ID         uuid.UUID
	SitterID   uuid.UUID
	Name       string
	PriceCents int64
}

// DiscountTier grants PercentBps basis points (1500 = 15%) off the base
// subtotal for stays of at least MinNights.
type DiscountTier struct {
	MinNights  int
	PercentBps int64
}

// AppliedAddon is an add-on price copied onto a booking at commit time.
type AppliedAddon struct {
	AddonID    uuid.UUID `json:"addon_id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
}

// SitterPricing is the sitter-owned configuration read at accept time.
type SitterPricing struct {
	Service ServiceListing
	Addons  []Addon
	Tiers   []DiscountTier
}

// ResolveAddons maps requested add-on names onto the sitter's current
// prices. Names the sitter no longer offers are returned in missing.
func (p SitterPricing) ResolveAddons(names []string) (applied []AppliedAddon, missing []string) {
	byName := make(map[string]Addon, len(p.Addons))
	for _, a := range p.Addons {
		byName[a.Name] = a
	}

	for _, name := range names {
		a, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		applied = append(applied, AppliedAddon{AddonID: a.ID, Name: a.Name, PriceCents: a.PriceCents})
	}
	return applied, missing
}

func AddonPrices(addons []AppliedAddon) []int64 {
	out := make([]int64, 0, len(addons))
	for _, a := range addons {
		out = append(out, a.PriceCents)
	}
	return out
}
