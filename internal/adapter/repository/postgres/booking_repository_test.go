package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/sitterbook/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingColumnNames = []string{
	"id", "customer_id", "sitter_id", "service_id", "start_date", "end_date", "notes",
	"address", "city", "postal_code", "access_instructions", "status", "version",
	"nights", "base_rate_cents", "base_subtotal_cents", "addons_total_cents",
	"discount_percent_bps", "discount_cents", "subtotal_cents", "owner_service_fee_cents",
	"total_cost_cents", "sitter_commission_cents", "platform_fee_cents", "sitter_payout_cents",
	"payment_status", "amount_paid_cents", "paid_at", "payment_method",
	"created_at", "updated_at", "accepted_at", "resolved_at",
}

func acceptedRow(bookingID, sitterID uuid.UUID, now time.Time) []driver.Value {
	return []driver.Value{
		bookingID.String(), uuid.NewString(), sitterID.String(), uuid.NewString(),
		time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), nil,
		"1 Main St", "Springfield", "12345", nil, "ACCEPTED", int64(2),
		int64(3), int64(5000), int64(15000), int64(3000),
		int64(0), int64(0), int64(18000), int64(1260),
		int64(19260), int64(2250), int64(3510), int64(15750),
		"UNPAID", nil, nil, nil,
		now, now, now, now,
	}
}

func newMock(t *testing.T) (*BookingRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBookingRepository(db), mock
}

func TestCommitAcceptance_Success(t *testing.T) {
	repo, mock := newMock(t)
	bookingID, sitterID := uuid.New(), uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE booking_requests")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET status = 'ACCEPTED'")).
		WithArgs(bookingID, sitterID, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET status = 'LOST'")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO booking_addons")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CommitAcceptance(context.Background(), domain.AcceptanceCommit{
		Booking:       domain.BookingRef{ID: bookingID, Version: 3},
		SitterID:      sitterID,
		ServiceID:     uuid.New(),
		Pricing:       domain.CostBreakdown{Nights: 3, TotalCostCents: 19260},
		AppliedAddons: []domain.AppliedAddon{{AddonID: uuid.New(), Name: "grooming", PriceCents: 3000}},
		AcceptedAt:    now,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitAcceptance_LostCompareAndSwap(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE booking_requests")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.CommitAcceptance(context.Background(), domain.AcceptanceCommit{
		Booking:    domain.BookingRef{ID: uuid.New(), Version: 1},
		SitterID:   uuid.New(),
		AcceptedAt: time.Now(),
	})

	assert.ErrorIs(t, err, domain.ErrConcurrentUpdate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitAcceptance_RecipientNoLongerNotified(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE booking_requests")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET status = 'ACCEPTED'")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.CommitAcceptance(context.Background(), domain.AcceptanceCommit{
		Booking:    domain.BookingRef{ID: uuid.New(), Version: 1},
		SitterID:   uuid.New(),
		AcceptedAt: time.Now(),
	})

	assert.ErrorIs(t, err, domain.ErrNotEligible)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeclineRecipient_LastOneDeclinesBooking(t *testing.T) {
	repo, mock := newMock(t)
	ref := domain.BookingRef{ID: uuid.New(), Version: 4}
	sitterID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET version = version + 1")).
		WithArgs(ref.ID, ref.Version, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET status = 'DECLINED'")).
		WithArgs(ref.ID, sitterID, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM booking_recipients")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE booking_requests SET status = 'DECLINED'")).
		WithArgs(ref.ID, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	declined, err := repo.DeclineRecipient(context.Background(), ref, sitterID, now)

	require.NoError(t, err)
	assert.True(t, declined)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeclineRecipient_OthersStillOutstanding(t *testing.T) {
	repo, mock := newMock(t)
	ref := domain.BookingRef{ID: uuid.New(), Version: 1}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET version = version + 1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET status = 'DECLINED'")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM booking_recipients")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectCommit()

	declined, err := repo.DeclineRecipient(context.Background(), ref, uuid.New(), time.Now())

	require.NoError(t, err)
	assert.False(t, declined)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionStatus_UsesAllowedSourceStatuses(t *testing.T) {
	repo, mock := newMock(t)
	ref := domain.BookingRef{ID: uuid.New(), Version: 2}
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("status = ANY($5)")).
		WithArgs(ref.ID, ref.Version, domain.BookingExpired, now, pq.Array([]string{"PENDING_ACCEPTANCE"})).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.TransitionStatus(context.Background(), ref, domain.BookingExpired, now)

	assert.ErrorIs(t, err, domain.ErrConcurrentUpdate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionStatus_UnreachableTarget(t *testing.T) {
	repo, _ := newMock(t)

	err := repo.TransitionStatus(context.Background(), domain.BookingRef{ID: uuid.New()}, domain.BookingPendingAcceptance, time.Now())

	assert.ErrorIs(t, err, domain.ErrStateConflict)
}

func TestMarkPaid_LocksRowAndStoresPayment(t *testing.T) {
	repo, mock := newMock(t)
	bookingID, sitterID := uuid.New(), uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(bookingID).
		WillReturnRows(sqlmock.NewRows(bookingColumnNames).AddRow(acceptedRow(bookingID, sitterID, now)...))
	mock.ExpectExec(regexp.QuoteMeta("SET payment_status = $2")).
		WithArgs(bookingID, domain.PaymentPaid, int64(19260), now, domain.PaymentMethodCard).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_requested_addons")).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("grooming"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_addons")).
		WillReturnRows(sqlmock.NewRows([]string{"addon_id", "name", "price_cents"}).AddRow(uuid.NewString(), "grooming", int64(3000)))
	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_pets")).
		WillReturnRows(sqlmock.NewRows([]string{"pet_id"}).AddRow(uuid.NewString()))

	b, changed, err := repo.MarkPaid(context.Background(), bookingID, 19260, domain.PaymentMethodCard, now)

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.PaymentPaid, b.Payment.Status)
	assert.Equal(t, int64(19260), b.Pricing.TotalCostCents)
	assert.Equal(t, sitterID, *b.SitterID)
	assert.Equal(t, []string{"grooming"}, b.RequestedAddons)
	assert.Len(t, b.AppliedAddons, 1)
	assert.Equal(t, 3, b.Stay.Nights())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaid_PendingBookingIsNotPayable(t *testing.T) {
	repo, mock := newMock(t)
	bookingID := uuid.New()
	now := time.Now().UTC()

	row := acceptedRow(bookingID, uuid.New(), now)
	row[2] = nil
	row[11] = "PENDING_ACCEPTANCE"
	for i := 13; i <= 24; i++ {
		row[i] = nil
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows(bookingColumnNames).AddRow(row...))
	mock.ExpectRollback()

	_, _, err := repo.MarkPaid(context.Background(), bookingID, 100, domain.PaymentMethodCash, now)

	assert.ErrorIs(t, err, domain.ErrNotPayable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_requests WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows(bookingColumnNames))
	mock.ExpectRollback()

	_, err := repo.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_LoadsChildrenInOneTransaction(t *testing.T) {
	repo, mock := newMock(t)
	bookingID, sitterID, petID, addonID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_requests WHERE id = $1")).
		WithArgs(bookingID).
		WillReturnRows(sqlmock.NewRows(bookingColumnNames).AddRow(acceptedRow(bookingID, sitterID, now)...))
	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_requested_addons")).
		WithArgs(bookingID).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("grooming").AddRow("walk"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_addons")).
		WithArgs(bookingID).
		WillReturnRows(sqlmock.NewRows([]string{"addon_id", "name", "price_cents"}).AddRow(addonID.String(), "grooming", int64(3000)))
	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_pets")).
		WithArgs(bookingID).
		WillReturnRows(sqlmock.NewRows([]string{"pet_id"}).AddRow(petID.String()))
	mock.ExpectCommit()

	b, err := repo.GetByID(context.Background(), bookingID)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingAccepted, b.Status)
	assert.Equal(t, sitterID, *b.SitterID)
	assert.Equal(t, []string{"grooming", "walk"}, b.RequestedAddons)
	assert.Equal(t, []domain.AppliedAddon{{AddonID: addonID, Name: "grooming", PriceCents: 3000}}, b.AppliedAddons)
	assert.Equal(t, []uuid.UUID{petID}, b.PetIDs)
	assert.Equal(t, int64(19260), b.Pricing.TotalCostCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_ChildRowErrorIsDependencyError(t *testing.T) {
	repo, mock := newMock(t)
	bookingID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_requests WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows(bookingColumnNames).AddRow(acceptedRow(bookingID, uuid.New(), now)...))
	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_requested_addons")).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("grooming").RowError(0, errors.New("connection reset")))
	mock.ExpectRollback()

	_, err := repo.GetByID(context.Background(), bookingID)

	assert.ErrorIs(t, err, domain.ErrDependency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecipients(t *testing.T) {
	repo, mock := newMock(t)
	bookingID, first, second, serviceID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	notified := time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)
	responded := notified.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_recipients")).
		WithArgs(bookingID).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id", "sitter_id", "service_id", "status", "notified_at", "responded_at"}).
			AddRow(bookingID.String(), first.String(), serviceID.String(), "DECLINED", notified, responded).
			AddRow(bookingID.String(), second.String(), serviceID.String(), "NOTIFIED", notified, nil))

	entries, err := repo.ListRecipients(context.Background(), bookingID)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0].SitterID)
	assert.Equal(t, domain.RecipientDeclined, entries[0].Status)
	assert.Equal(t, &responded, entries[0].RespondedAt)
	assert.Equal(t, domain.RecipientNotified, entries[1].Status)
	assert.Nil(t, entries[1].RespondedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func newIntake(customerID, petID, sitterID uuid.UUID, now time.Time) *domain.Intake {
	stay, _ := domain.NewStayWindow(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC))
	booking := &domain.BookingRequest{
		ID:              uuid.New(),
		CustomerID:      customerID,
		ServiceID:       uuid.New(),
		Stay:            stay,
		RequestedAddons: []string{"grooming"},
		PetIDs:          []uuid.UUID{petID},
		Location:        domain.LocationDetails{Address: "1 Main St", City: "Springfield", PostalCode: "12345"},
		Status:          domain.BookingPendingAcceptance,
		Version:         1,
		Payment:         domain.Payment{Status: domain.PaymentUnpaid},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return &domain.Intake{
		Customer:   &domain.Customer{ID: customerID, Name: "Ana Lima", Email: "ana@example.com", Phone: "555"},
		Pets:       []domain.Pet{{ID: petID, CustomerID: customerID, Name: "Rex", Type: domain.PetDog}},
		Booking:    booking,
		Recipients: []domain.RecipientEntry{domain.NewRecipientEntry(booking.ID, sitterID, booking.ServiceID, now)},
	}
}

func TestCreateBookingRequest_ReusesExistingCustomerAndPet(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)
	sitterID := uuid.New()
	existingCustomer, existingPet := uuid.New(), uuid.New()

	intake := newIntake(uuid.New(), uuid.New(), sitterID, now)
	b := intake.Booking

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO customers")).
		WithArgs(sqlmock.AnyArg(), "Ana Lima", "ana@example.com", "555").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(existingCustomer.String()))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO pets")).
		WithArgs(sqlmock.AnyArg(), existingCustomer, "Rex", sqlmock.AnyArg(), "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(existingPet.String()))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO booking_requests")).
		WithArgs(b.ID, existingCustomer, b.ServiceID, b.Stay.Start, b.Stay.End, "",
			"1 Main St", "Springfield", "12345", "",
			sqlmock.AnyArg(), 1, sqlmock.AnyArg(), now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO booking_requested_addons")).
		WithArgs(b.ID, 0, "grooming").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO booking_pets")).
		WithArgs(b.ID, existingPet).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO booking_recipients")).
		ExpectExec().
		WithArgs(b.ID, sitterID, b.ServiceID, sqlmock.AnyArg(), now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateBookingRequest(context.Background(), intake)

	require.NoError(t, err)
	assert.Equal(t, existingCustomer, intake.Customer.ID)
	assert.Equal(t, existingCustomer, b.CustomerID)
	assert.Equal(t, existingPet, intake.Pets[0].ID)
	assert.Equal(t, []uuid.UUID{existingPet}, b.PetIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRequest_RollsBackOnFailure(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)
	customerID, petID := uuid.New(), uuid.New()
	intake := newIntake(customerID, petID, uuid.New(), now)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO customers")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(customerID.String()))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO pets")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(petID.String()))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO booking_requests")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.CreateBookingRequest(context.Background(), intake)

	assert.ErrorIs(t, err, domain.ErrDependency)
	assert.ErrorContains(t, err, "insert booking request")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddRecipients_DuplicateIsValidationError(t *testing.T) {
	repo, mock := newMock(t)
	ref := domain.BookingRef{ID: uuid.New(), Version: 1}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET version = version + 1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO booking_recipients")).
		ExpectExec().
		WillReturnError(&pq.Error{Code: "23505", Constraint: "booking_recipients_pkey"})
	mock.ExpectRollback()

	err := repo.AddRecipients(context.Background(), ref, []domain.RecipientEntry{
		domain.NewRecipientEntry(ref.ID, uuid.New(), uuid.New(), time.Now()),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExpiredRequests_DriverFailureIsDependencyError(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("start_date < $1")).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetExpiredRequests(context.Background(), time.Now(), 10)

	assert.ErrorIs(t, err, domain.ErrDependency)
}

func TestGetFinishedStays(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()
	today := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("end_date <= $1")).
		WithArgs(today, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "version"}).AddRow(id.String(), 3))

	refs, err := repo.GetFinishedStays(context.Background(), today, 5)

	require.NoError(t, err)
	assert.Equal(t, []domain.BookingRef{{ID: id, Version: 3}}, refs)
}
