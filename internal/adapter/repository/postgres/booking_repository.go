package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/sitterbook/internal/core/domain"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `
	id, customer_id, sitter_id, service_id, start_date, end_date, notes,
	address, city, postal_code, access_instructions, status, version,
	nights, base_rate_cents, base_subtotal_cents, addons_total_cents,
	discount_percent_bps, discount_cents, subtotal_cents, owner_service_fee_cents,
	total_cost_cents, sitter_commission_cents, platform_fee_cents, sitter_payout_cents,
	payment_status, amount_paid_cents, paid_at, payment_method,
	created_at, updated_at, accepted_at, resolved_at`

func (r *BookingRepository) CreateBookingRequest(ctx context.Context, intake *domain.Intake) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return dbError("begin transaction", err)
	}

	defer tx.Rollback()

	c := intake.Customer
	err = tx.QueryRowContext(ctx, `
	INSERT INTO customers (id, name, email, phone)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, phone = EXCLUDED.phone
	RETURNING id
	`, c.ID, c.Name, c.Email, c.Phone).Scan(&c.ID)
	if err != nil {
		return dbError("upsert customer", err)
	}

	b := intake.Booking
	b.CustomerID = c.ID
	b.PetIDs = b.PetIDs[:0]

	for i := range intake.Pets {
		p := &intake.Pets[i]
		p.CustomerID = c.ID
		err := tx.QueryRowContext(ctx, `
		INSERT INTO pets (id, customer_id, name, pet_type, breed, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (customer_id, name) DO UPDATE
		SET pet_type = EXCLUDED.pet_type, breed = EXCLUDED.breed, notes = EXCLUDED.notes
		RETURNING id
		`, p.ID, p.CustomerID, p.Name, p.Type, p.Breed, p.Notes).Scan(&p.ID)
		if err != nil {
			return dbError("upsert pet", err)
		}
		b.PetIDs = append(b.PetIDs, p.ID)
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO booking_requests (
		id, customer_id, service_id, start_date, end_date, notes,
		address, city, postal_code, access_instructions,
		status, version, payment_status, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		b.ID, b.CustomerID, b.ServiceID, b.Stay.Start, b.Stay.End, b.Notes,
		b.Location.Address, b.Location.City, b.Location.PostalCode, b.Location.AccessInstructions,
		b.Status, b.Version, domain.PaymentUnpaid, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return dbError("insert booking request", err)
	}

	for i, name := range b.RequestedAddons {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO booking_requested_addons (booking_id, position, name) VALUES ($1, $2, $3)
		`, b.ID, i, name); err != nil {
			return dbError("insert requested add-on", err)
		}
	}

	for _, petID := range b.PetIDs {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO booking_pets (booking_id, pet_id) VALUES ($1, $2)
		`, b.ID, petID); err != nil {
			return dbError("insert booking pet", err)
		}
	}

	if err := insertRecipients(ctx, tx, intake.Recipients); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return dbError("commit booking request", err)
	}

	return nil
}

// GetByID reads the booking row and its children from one snapshot.
func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.BookingRequest, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, dbError("begin transaction", err)
	}

	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT`+bookingColumns+` FROM booking_requests WHERE id = $1`, bookingID)

	b, err := scanBooking(row)
	if err != nil {
		return nil, dbError("get booking request", err)
	}

	if err := loadChildren(ctx, tx, b); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, dbError("commit read", err)
	}
	return b, nil
}

func (r *BookingRepository) ListRecipients(ctx context.Context, bookingID uuid.UUID) ([]domain.RecipientEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT booking_id, sitter_id, service_id, status, notified_at, responded_at
	FROM booking_recipients
	WHERE booking_id = $1
	ORDER BY notified_at, sitter_id
	`, bookingID)
	if err != nil {
		return nil, dbError("list recipients", err)
	}

	defer rows.Close()

	var entries []domain.RecipientEntry
	for rows.Next() {
		var e domain.RecipientEntry
		var respondedAt sql.NullTime
		if err := rows.Scan(&e.BookingID, &e.SitterID, &e.ServiceID, &e.Status, &e.NotifiedAt, &respondedAt); err != nil {
			return nil, dbError("scan recipient", err)
		}
		if respondedAt.Valid {
			t := respondedAt.Time
			e.RespondedAt = &t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list recipients", err)
	}

	return entries, nil
}

func (r *BookingRepository) AddRecipients(ctx context.Context, ref domain.BookingRef, entries []domain.RecipientEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return dbError("begin transaction", err)
	}

	defer tx.Rollback()

	if err := claimPending(ctx, tx, ref, time.Now().UTC()); err != nil {
		return err
	}

	if err := insertRecipients(ctx, tx, entries); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return dbError("commit recipients", err)
	}

	return nil
}

// CommitAcceptance flips the booking to ACCEPTED and freezes its pricing in
// one statement guarded by status and version, so only one caller can ever
// succeed for a given booking.
func (r *BookingRepository) CommitAcceptance(ctx context.Context, commit domain.AcceptanceCommit) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return dbError("begin transaction", err)
	}

	defer tx.Rollback()

	p := commit.Pricing
	result, err := tx.ExecContext(ctx, `
	UPDATE booking_requests
	SET status = $3,
		sitter_id = $4,
		service_id = $5,
		nights = $6,
		base_rate_cents = $7,
		base_subtotal_cents = $8,
		addons_total_cents = $9,
		discount_percent_bps = $10,
		discount_cents = $11,
		subtotal_cents = $12,
		owner_service_fee_cents = $13,
		total_cost_cents = $14,
		sitter_commission_cents = $15,
		platform_fee_cents = $16,
		sitter_payout_cents = $17,
		payment_status = $18,
		accepted_at = $19,
		resolved_at = $19,
		updated_at = $19,
		version = version + 1
	WHERE id = $1 AND version = $2 AND status = 'PENDING_ACCEPTANCE'
	`,
		commit.Booking.ID, commit.Booking.Version, domain.BookingAccepted,
		commit.SitterID, commit.ServiceID,
		p.Nights, p.NightlyRateCents, p.BaseSubtotalCents, p.AddonsTotalCents,
		p.DiscountPercentBps, p.DiscountCents, p.SubtotalCents, p.OwnerServiceFeeCents,
		p.TotalCostCents, p.SitterCommissionCents, p.PlatformFeeCents, p.SitterPayoutCents,
		domain.PaymentUnpaid, commit.AcceptedAt,
	)
	if err := expectOneRow(result, err, "accept booking request"); err != nil {
		return err
	}

	result, err = tx.ExecContext(ctx, `
	UPDATE booking_recipients
	SET status = 'ACCEPTED', responded_at = $3
	WHERE booking_id = $1 AND sitter_id = $2 AND status = 'NOTIFIED'
	`, commit.Booking.ID, commit.SitterID, commit.AcceptedAt)
	if err := expectOneRow(result, err, "accept recipient"); err != nil {
		if errors.Is(err, domain.ErrConcurrentUpdate) {
			return domain.ErrNotEligible
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `
	UPDATE booking_recipients
	SET status = 'LOST', responded_at = $2
	WHERE booking_id = $1 AND status = 'NOTIFIED'
	`, commit.Booking.ID, commit.AcceptedAt); err != nil {
		return dbError("close losing recipients", err)
	}

	for _, a := range commit.AppliedAddons {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO booking_addons (booking_id, addon_id, name, price_cents) VALUES ($1, $2, $3, $4)
		`, commit.Booking.ID, a.AddonID, a.Name, a.PriceCents); err != nil {
			return dbError("insert applied add-on", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return dbError("commit acceptance", err)
	}

	return nil
}

// DeclineRecipient records one refusal and, when nobody is left to answer,
// declines the booking within the same transaction.
func (r *BookingRepository) DeclineRecipient(ctx context.Context, ref domain.BookingRef, sitterID uuid.UUID, at time.Time) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, dbError("begin transaction", err)
	}

	defer tx.Rollback()

	if err := claimPending(ctx, tx, ref, at); err != nil {
		return false, err
	}

	result, err := tx.ExecContext(ctx, `
	UPDATE booking_recipients
	SET status = 'DECLINED', responded_at = $3
	WHERE booking_id = $1 AND sitter_id = $2 AND status = 'NOTIFIED'
	`, ref.ID, sitterID, at)
	if err := expectOneRow(result, err, "decline recipient"); err != nil {
		if errors.Is(err, domain.ErrConcurrentUpdate) {
			return false, domain.ErrNotEligible
		}
		return false, err
	}

	var outstanding int
	if err := tx.QueryRowContext(ctx, `
	SELECT COUNT(*) FROM booking_recipients WHERE booking_id = $1 AND status = 'NOTIFIED'
	`, ref.ID).Scan(&outstanding); err != nil {
		return false, dbError("count outstanding recipients", err)
	}

	declined := outstanding == 0
	if declined {
		if _, err := tx.ExecContext(ctx, `
		UPDATE booking_requests SET status = 'DECLINED', resolved_at = $2, updated_at = $2 WHERE id = $1
		`, ref.ID, at); err != nil {
			return false, dbError("decline booking request", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return false, dbError("commit decline", err)
	}

	return declined, nil
}

func (r *BookingRepository) TransitionStatus(ctx context.Context, ref domain.BookingRef, to domain.BookingStatus, at time.Time) error {
	from := sourceStatuses(to)
	if len(from) == 0 {
		return fmt.Errorf("%w: no transition leads to %s", domain.ErrStateConflict, to)
	}

	result, err := r.db.ExecContext(ctx, `
	UPDATE booking_requests
	SET status = $3,
		resolved_at = CASE WHEN status = 'PENDING_ACCEPTANCE' THEN $4 ELSE resolved_at END,
		updated_at = $4,
		version = version + 1
	WHERE id = $1 AND version = $2 AND status = ANY($5)
	`, ref.ID, ref.Version, to, at, pq.Array(from))

	return expectOneRow(result, err, "transition booking request")
}

// MarkPaid locks the booking row so concurrent payment marks serialise.
func (r *BookingRepository) MarkPaid(ctx context.Context, bookingID uuid.UUID, amountCents int64, method domain.PaymentMethod, at time.Time) (*domain.BookingRequest, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, dbError("begin transaction", err)
	}

	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT`+bookingColumns+` FROM booking_requests WHERE id = $1 FOR UPDATE`, bookingID)
	b, err := scanBooking(row)
	if err != nil {
		return nil, false, dbError("lock booking request", err)
	}

	changed, err := b.ApplyPayment(amountCents, method, at)
	if err != nil {
		return nil, false, err
	}

	if changed {
		if _, err := tx.ExecContext(ctx, `
		UPDATE booking_requests
		SET payment_status = $2, amount_paid_cents = $3, paid_at = $4, payment_method = $5, updated_at = $4
		WHERE id = $1
		`, bookingID, b.Payment.Status, amountCents, at, method); err != nil {
			return nil, false, dbError("mark booking paid", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, false, dbError("commit payment", err)
	}

	if err := loadChildren(ctx, r.db, b); err != nil {
		return nil, false, err
	}
	return b, changed, nil
}

func (r *BookingRepository) GetExpiredRequests(ctx context.Context, today time.Time, limit int) ([]domain.BookingRef, error) {
	return r.refs(ctx, `
	SELECT id, version FROM booking_requests
	WHERE status = 'PENDING_ACCEPTANCE' AND start_date < $1
	ORDER BY created_at
	LIMIT $2
	`, today, limit)
}

func (r *BookingRepository) GetFinishedStays(ctx context.Context, today time.Time, limit int) ([]domain.BookingRef, error) {
	return r.refs(ctx, `
	SELECT id, version FROM booking_requests
	WHERE status = 'ACCEPTED' AND end_date <= $1
	ORDER BY created_at
	LIMIT $2
	`, today, limit)
}

func (r *BookingRepository) refs(ctx context.Context, query string, today time.Time, limit int) ([]domain.BookingRef, error) {
	rows, err := r.db.QueryContext(ctx, query, today, limit)
	if err != nil {
		return nil, dbError("query booking refs", err)
	}

	defer rows.Close()

	var refs []domain.BookingRef
	for rows.Next() {
		var ref domain.BookingRef
		if err := rows.Scan(&ref.ID, &ref.Version); err != nil {
			return nil, dbError("scan booking ref", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("query booking refs", err)
	}

	return refs, nil
}

// claimPending bumps the version of a pending booking. It is the first
// statement of every transaction that changes a pending booking.
func claimPending(ctx context.Context, tx *sql.Tx, ref domain.BookingRef, at time.Time) error {
	result, err := tx.ExecContext(ctx, `
	UPDATE booking_requests
	SET version = version + 1, updated_at = $3
	WHERE id = $1 AND version = $2 AND status = 'PENDING_ACCEPTANCE'
	`, ref.ID, ref.Version, at)

	return expectOneRow(result, err, "claim booking request")
}

func insertRecipients(ctx context.Context, tx *sql.Tx, entries []domain.RecipientEntry) error {
	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO booking_recipients (booking_id, sitter_id, service_id, status, notified_at)
	VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return dbError("prepare recipient statement", err)
	}

	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.BookingID, e.SitterID, e.ServiceID, e.Status, e.NotifiedAt); err != nil {
			return dbError(fmt.Sprintf("insert recipient %s", e.SitterID), err)
		}
	}
	return nil
}

func sourceStatuses(to domain.BookingStatus) []string {
	var from []string
	for _, s := range []domain.BookingStatus{
		domain.BookingPendingAcceptance,
		domain.BookingAccepted,
		domain.BookingCompleted,
		domain.BookingDeclined,
		domain.BookingExpired,
	} {
		if s.CanTransitionTo(to) {
			from = append(from, string(s))
		}
	}
	return from
}
