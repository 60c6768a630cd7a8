package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/sitterbook/internal/core/domain"
)

// BookingRepository persists booking requests and their recipients. Every
// method that changes a pending booking takes the version the caller read
// and fails with domain.ErrConcurrentUpdate when it no longer matches.
type BookingRepository interface {
	CreateBookingRequest(ctx context.Context, intake *domain.Intake) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.BookingRequest, error)
	ListRecipients(ctx context.Context, bookingID uuid.UUID) ([]domain.RecipientEntry, error)
	AddRecipients(ctx context.Context, ref domain.BookingRef, entries []domain.RecipientEntry) error
	CommitAcceptance(ctx context.Context, commit domain.AcceptanceCommit) error
	DeclineRecipient(ctx context.Context, ref domain.BookingRef, sitterID uuid.UUID, at time.Time) (bookingDeclined bool, err error)
	TransitionStatus(ctx context.Context, ref domain.BookingRef, to domain.BookingStatus, at time.Time) error
	MarkPaid(ctx context.Context, bookingID uuid.UUID, amountCents int64, method domain.PaymentMethod, at time.Time) (*domain.BookingRequest, bool, error)
	GetExpiredRequests(ctx context.Context, today time.Time, limit int) ([]domain.BookingRef, error)
	GetFinishedStays(ctx context.Context, today time.Time, limit int) ([]domain.BookingRef, error)
}

// SitterRepository reads sitter-owned configuration. The engine never
// writes through it.
type SitterRepository interface {
	GetSitter(ctx context.Context, sitterID uuid.UUID) (*domain.Sitter, error)
	GetService(ctx context.Context, serviceID uuid.UUID) (*domain.ServiceListing, error)
	GetPrimaryService(ctx context.Context, sitterID uuid.UUID) (*domain.ServiceListing, error)
	GetPricing(ctx context.Context, sitterID, serviceID uuid.UUID) (*domain.SitterPricing, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}
