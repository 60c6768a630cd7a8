package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/sitterbook/internal/core/domain"
)

const uniqueViolation = "23505"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// dbError maps driver errors onto domain errors. Missing rows become
// ErrNotFound, unique violations become validation errors and everything
// else is a dependency failure.
func dbError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		switch pqErr.Constraint {
		case "booking_recipients_pkey":
			return domain.NewValidationError("sitter_ids", "sitter was already notified")
		case "booking_requests_pkey":
			return domain.NewValidationError("id", "booking request already exists")
		default:
			return domain.NewValidationError(pqErr.Constraint, "already exists")
		}
	}

	return &domain.DependencyError{Op: op, Err: err}
}

// expectOneRow turns a guarded UPDATE that matched nothing into
// domain.ErrConcurrentUpdate.
func expectOneRow(result sql.Result, err error, op string) error {
	if err != nil {
		return dbError(op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return dbError(op, err)
	}

	if rowsAffected == 0 {
		return domain.ErrConcurrentUpdate
	}

	return nil
}

func scanBooking(row rowScanner) (*domain.BookingRequest, error) {
	var (
		b                  domain.BookingRequest
		sitterID           uuid.NullUUID
		start, end         time.Time
		accessInstructions sql.NullString
		notes              sql.NullString
		money              [12]sql.NullInt64
		paymentStatus      string
		amountPaid         sql.NullInt64
		paidAt             sql.NullTime
		paymentMethod      sql.NullString
		acceptedAt         sql.NullTime
		resolvedAt         sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.CustomerID,
		&sitterID,
		&b.ServiceID,
		&start,
		&end,
		&notes,
		&b.Location.Address,
		&b.Location.City,
		&b.Location.PostalCode,
		&accessInstructions,
		&b.Status,
		&b.Version,
		&money[0], &money[1], &money[2], &money[3], &money[4], &money[5],
		&money[6], &money[7], &money[8], &money[9], &money[10], &money[11],
		&paymentStatus,
		&amountPaid,
		&paidAt,
		&paymentMethod,
		&b.CreatedAt,
		&b.UpdatedAt,
		&acceptedAt,
		&resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	stay, err := domain.NewStayWindow(start, end)
	if err != nil {
		return nil, err
	}
	b.Stay = stay
	b.Notes = notes.String
	b.Location.AccessInstructions = accessInstructions.String

	if sitterID.Valid {
		id := sitterID.UUID
		b.SitterID = &id
	}

	if money[8].Valid {
		b.Pricing = &domain.CostBreakdown{
			Nights:                int(money[0].Int64),
			NightlyRateCents:      money[1].Int64,
			BaseSubtotalCents:     money[2].Int64,
			AddonsTotalCents:      money[3].Int64,
			DiscountPercentBps:    money[4].Int64,
			DiscountCents:         money[5].Int64,
			SubtotalCents:         money[6].Int64,
			OwnerServiceFeeCents:  money[7].Int64,
			TotalCostCents:        money[8].Int64,
			SitterCommissionCents: money[9].Int64,
			PlatformFeeCents:      money[10].Int64,
			SitterPayoutCents:     money[11].Int64,
		}
	}

	b.Payment.Status = domain.PaymentStatus(paymentStatus)
	if amountPaid.Valid {
		v := amountPaid.Int64
		b.Payment.AmountCents = &v
	}
	if paidAt.Valid {
		t := paidAt.Time
		b.Payment.PaidAt = &t
	}
	b.Payment.Method = domain.PaymentMethod(paymentMethod.String)

	if acceptedAt.Valid {
		t := acceptedAt.Time
		b.AcceptedAt = &t
	}
	if resolvedAt.Valid {
		t := resolvedAt.Time
		b.ResolvedAt = &t
	}

	return &b, nil
}

func loadChildren(ctx context.Context, q queryer, b *domain.BookingRequest) error {
	rows, err := q.QueryContext(ctx, `
	SELECT name FROM booking_requested_addons WHERE booking_id = $1 ORDER BY position
	`, b.ID)
	if err != nil {
		return dbError("load requested add-ons", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return dbError("scan requested add-on", err)
		}
		b.RequestedAddons = append(b.RequestedAddons, name)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return dbError("load requested add-ons", err)
	}

	rows, err = q.QueryContext(ctx, `
	SELECT addon_id, name, price_cents FROM booking_addons WHERE booking_id = $1 ORDER BY name
	`, b.ID)
	if err != nil {
		return dbError("load applied add-ons", err)
	}
	for rows.Next() {
		var a domain.AppliedAddon
		if err := rows.Scan(&a.AddonID, &a.Name, &a.PriceCents); err != nil {
			rows.Close()
			return dbError("scan applied add-on", err)
		}
		b.AppliedAddons = append(b.AppliedAddons, a)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return dbError("load applied add-ons", err)
	}

	rows, err = q.QueryContext(ctx, `SELECT pet_id FROM booking_pets WHERE booking_id = $1`, b.ID)
	if err != nil {
		return dbError("load booking pets", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return dbError("scan booking pet", err)
		}
		b.PetIDs = append(b.PetIDs, id)
	}

	return dbError("load booking pets", rows.Err())
}
