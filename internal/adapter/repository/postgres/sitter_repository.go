package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/srgjo27/sitterbook/internal/core/domain"
)

type SitterRepository struct {
	db *sql.DB
}

func NewSitterRepository(db *sql.DB) *SitterRepository {
	return &SitterRepository{db: db}
}

func (r *SitterRepository) GetSitter(ctx context.Context, sitterID uuid.UUID) (*domain.Sitter, error) {
	query := `
	SELECT id, name, email, active
	FROM sitters
	WHERE id = $1
	`

	var sitter domain.Sitter
	err := r.db.QueryRowContext(ctx, query, sitterID).Scan(
		&sitter.ID,
		&sitter.Name,
		&sitter.Email,
		&sitter.Active,
	)
	if err != nil {
		return nil, dbError("get sitter", err)
	}

	return &sitter, nil
}

func (r *SitterRepository) GetService(ctx context.Context, serviceID uuid.UUID) (*domain.ServiceListing, error) {
	query := `
	SELECT id, sitter_id, name, rate_cents, is_primary
	FROM sitter_services
	WHERE id = $1
	`

	return scanService(r.db.QueryRowContext(ctx, query, serviceID), "get service")
}

// GetPrimaryService returns the listing flagged primary, falling back to
// the first listing by name.
func (r *SitterRepository) GetPrimaryService(ctx context.Context, sitterID uuid.UUID) (*domain.ServiceListing, error) {
	query := `
	SELECT id, sitter_id, name, rate_cents, is_primary
	FROM sitter_services
	WHERE sitter_id = $1
	ORDER BY is_primary DESC, name
	LIMIT 1
	`

	return scanService(r.db.QueryRowContext(ctx, query, sitterID), "get primary service")
}

func (r *SitterRepository) GetPricing(ctx context.Context, sitterID, serviceID uuid.UUID) (*domain.SitterPricing, error) {
	listing, err := r.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if listing.SitterID != sitterID {
		return nil, domain.ErrNotFound
	}

	pricing := &domain.SitterPricing{Service: *listing}

	rows, err := r.db.QueryContext(ctx, `
	SELECT id, sitter_id, name, price_cents
	FROM sitter_addons
	WHERE sitter_id = $1
	ORDER BY name
	`, sitterID)
	if err != nil {
		return nil, dbError("list add-ons", err)
	}

	defer rows.Close()

	for rows.Next() {
		var a domain.Addon
		if err := rows.Scan(&a.ID, &a.SitterID, &a.Name, &a.PriceCents); err != nil {
			return nil, dbError("scan add-on", err)
		}
		pricing.Addons = append(pricing.Addons, a)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list add-ons", err)
	}

	tierRows, err := r.db.QueryContext(ctx, `
	SELECT min_nights, percent_bps
	FROM sitter_discount_tiers
	WHERE sitter_id = $1
	ORDER BY min_nights
	`, sitterID)
	if err != nil {
		return nil, dbError("list discount tiers", err)
	}

	defer tierRows.Close()

	for tierRows.Next() {
		var t domain.DiscountTier
		if err := tierRows.Scan(&t.MinNights, &t.PercentBps); err != nil {
			return nil, dbError("scan discount tier", err)
		}
		pricing.Tiers = append(pricing.Tiers, t)
	}
	if err := tierRows.Err(); err != nil {
		return nil, dbError("list discount tiers", err)
	}

	return pricing, nil
}

func scanService(row rowScanner, op string) (*domain.ServiceListing, error) {
	var listing domain.ServiceListing
	err := row.Scan(
		&listing.ID,
		&listing.SitterID,
		&listing.Name,
		&listing.RateCents,
		&listing.Primary,
	)
	if err != nil {
		return nil, dbError(op, err)
	}

	return &listing, nil
}
