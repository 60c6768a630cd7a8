package database

import (
	"context"
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		email VARCHAR(320) NOT NULL UNIQUE,
		phone VARCHAR(40) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS pets (
		id UUID PRIMARY KEY,
		customer_id UUID NOT NULL REFERENCES customers(id),
		name VARCHAR(100) NOT NULL,
		pet_type VARCHAR(20) NOT NULL,
		breed VARCHAR(100) NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		UNIQUE (customer_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS sitters (
		id UUID PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		email VARCHAR(320) NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE
	)`,

	`CREATE TABLE IF NOT EXISTS sitter_services (
		id UUID PRIMARY KEY,
		sitter_id UUID NOT NULL REFERENCES sitters(id),
		name VARCHAR(100) NOT NULL,
		rate_cents BIGINT NOT NULL CHECK (rate_cents >= 0),
		is_primary BOOLEAN NOT NULL DEFAULT FALSE
	)`,

	`CREATE TABLE IF NOT EXISTS sitter_addons (
		id UUID PRIMARY KEY,
		sitter_id UUID NOT NULL REFERENCES sitters(id),
		name VARCHAR(100) NOT NULL,
		price_cents BIGINT NOT NULL CHECK (price_cents >= 0),
		UNIQUE (sitter_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS sitter_discount_tiers (
		id UUID PRIMARY KEY,
		sitter_id UUID NOT NULL REFERENCES sitters(id),
		min_nights INTEGER NOT NULL CHECK (min_nights >= 1),
		percent_bps BIGINT NOT NULL CHECK (percent_bps BETWEEN 0 AND 10000)
	)`,

	`CREATE TABLE IF NOT EXISTS booking_requests (
		id UUID PRIMARY KEY,
		customer_id UUID NOT NULL REFERENCES customers(id),
		sitter_id UUID REFERENCES sitters(id),
		service_id UUID NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL CHECK (end_date >= start_date),
		notes TEXT,
		address VARCHAR(500) NOT NULL,
		city VARCHAR(200) NOT NULL,
		postal_code VARCHAR(20) NOT NULL,
		access_instructions TEXT,
		status VARCHAR(32) NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		nights INTEGER,
		base_rate_cents BIGINT,
		base_subtotal_cents BIGINT,
		addons_total_cents BIGINT,
		discount_percent_bps BIGINT,
		discount_cents BIGINT,
		subtotal_cents BIGINT,
		owner_service_fee_cents BIGINT,
		total_cost_cents BIGINT,
		sitter_commission_cents BIGINT,
		platform_fee_cents BIGINT,
		sitter_payout_cents BIGINT,
		payment_status VARCHAR(16) NOT NULL DEFAULT 'UNPAID',
		amount_paid_cents BIGINT,
		paid_at TIMESTAMPTZ,
		payment_method VARCHAR(32),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		accepted_at TIMESTAMPTZ,
		resolved_at TIMESTAMPTZ
	)`,

	`CREATE INDEX IF NOT EXISTS idx_booking_requests_status_start ON booking_requests (status, start_date)`,
	`CREATE INDEX IF NOT EXISTS idx_booking_requests_status_end ON booking_requests (status, end_date)`,

	`CREATE TABLE IF NOT EXISTS booking_recipients (
		booking_id UUID NOT NULL REFERENCES booking_requests(id),
		sitter_id UUID NOT NULL REFERENCES sitters(id),
		service_id UUID NOT NULL,
		status VARCHAR(16) NOT NULL,
		notified_at TIMESTAMPTZ NOT NULL,
		responded_at TIMESTAMPTZ,
		CONSTRAINT booking_recipients_pkey PRIMARY KEY (booking_id, sitter_id)
	)`,

	`CREATE TABLE IF NOT EXISTS booking_requested_addons (
		booking_id UUID NOT NULL REFERENCES booking_requests(id),
		position INTEGER NOT NULL,
		name VARCHAR(100) NOT NULL,
		PRIMARY KEY (booking_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS booking_addons (
		booking_id UUID NOT NULL REFERENCES booking_requests(id),
		addon_id UUID NOT NULL,
		name VARCHAR(100) NOT NULL,
		price_cents BIGINT NOT NULL,
		PRIMARY KEY (booking_id, addon_id)
	)`,

	`CREATE TABLE IF NOT EXISTS booking_pets (
		booking_id UUID NOT NULL REFERENCES booking_requests(id),
		pet_id UUID NOT NULL REFERENCES pets(id),
		PRIMARY KEY (booking_id, pet_id)
	)`,
}

// RunMigrations creates the schema if it does not exist yet.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
