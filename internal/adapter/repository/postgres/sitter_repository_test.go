package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/srgjo27/sitterbook/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serviceColumns = []string{"id", "sitter_id", "name", "rate_cents", "is_primary"}

func TestGetPricing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewSitterRepository(db)

	sitterID, serviceID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM sitter_services")).
		WithArgs(serviceID).
		WillReturnRows(sqlmock.NewRows(serviceColumns).AddRow(serviceID.String(), sitterID.String(), "boarding", int64(5000), true))
	mock.ExpectQuery(regexp.QuoteMeta("FROM sitter_addons")).
		WithArgs(sitterID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sitter_id", "name", "price_cents"}).
			AddRow(uuid.NewString(), sitterID.String(), "grooming", int64(3000)))
	mock.ExpectQuery(regexp.QuoteMeta("FROM sitter_discount_tiers")).
		WithArgs(sitterID).
		WillReturnRows(sqlmock.NewRows([]string{"min_nights", "percent_bps"}).AddRow(7, int64(1000)).AddRow(14, int64(1500)))

	pricing, err := repo.GetPricing(context.Background(), sitterID, serviceID)

	require.NoError(t, err)
	assert.Equal(t, int64(5000), pricing.Service.RateCents)
	assert.Len(t, pricing.Addons, 1)
	assert.Equal(t, []domain.DiscountTier{{MinNights: 7, PercentBps: 1000}, {MinNights: 14, PercentBps: 1500}}, pricing.Tiers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPricing_ServiceOfAnotherSitter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewSitterRepository(db)

	serviceID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM sitter_services")).
		WillReturnRows(sqlmock.NewRows(serviceColumns).AddRow(serviceID.String(), uuid.NewString(), "walk", int64(1500), false))

	_, err = repo.GetPricing(context.Background(), uuid.New(), serviceID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetSitter_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewSitterRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sitters")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "active"}))

	_, err = repo.GetSitter(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
