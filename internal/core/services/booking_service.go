package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/sitterbook/internal/core/domain"
	"github.com/srgjo27/sitterbook/internal/core/ports"
	"github.com/srgjo27/sitterbook/internal/pkg/validator"
)

type Options struct {
	// MaxCommitRetries bounds how often a transition is re-read and retried
	// after losing a version compare-and-swap.
	MaxCommitRetries int
	QuoteTTL         time.Duration
	PublishTimeout   time.Duration
	CleanupBatchSize int
	Now              func() time.Time
}

func (o Options) withDefaults() Options {
	if o.MaxCommitRetries <= 0 {
		o.MaxCommitRetries = 5
	}
	if o.QuoteTTL <= 0 {
		o.QuoteTTL = 5 * time.Minute
	}
	if o.PublishTimeout <= 0 {
		o.PublishTimeout = 3 * time.Second
	}
	if o.CleanupBatchSize <= 0 {
		o.CleanupBatchSize = 100
	}
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	return o
}

type BookingService struct {
	bookingRepo ports.BookingRepository
	sitterRepo  ports.SitterRepository
	publisher   ports.EventPublisher
	redisClient *redis.Client
	log         logrus.FieldLogger
	opts        Options
}

// NewBookingService wires the booking engine. redisClient and publisher may
// be nil, in which case quotes are not cached and events are dropped.
func NewBookingService(
	bookingRepo ports.BookingRepository,
	sitterRepo ports.SitterRepository,
	publisher ports.EventPublisher,
	redisClient *redis.Client,
	log logrus.FieldLogger,
	opts Options,
) *BookingService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BookingService{
		bookingRepo: bookingRepo,
		sitterRepo:  sitterRepo,
		publisher:   publisher,
		redisClient: redisClient,
		log:         log,
		opts:        opts.withDefaults(),
	}
}

func (s *BookingService) now() time.Time {
	return s.opts.Now()
}

func (s *BookingService) CreateBookingRequest(ctx context.Context, req CreateBookingRequest) (*CreateBookingResponse, error) {
	req = req.normalized()
	if fields := validator.Validate(req); fields != nil {
		return nil, &domain.ValidationError{Fields: fields}
	}

	sitterID, err := uuid.Parse(req.SitterID)
	if err != nil {
		return nil, domain.NewValidationError("sitter_id", "invalid sitter id")
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, domain.NewValidationError("service_id", "invalid service id")
	}

	stay, err := domain.ParseStayWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	sitter, err := s.sitterRepo.GetSitter(ctx, sitterID)
	if err != nil {
		return nil, notFoundAsValidation(err, "sitter_id", "unknown sitter")
	}
	if !sitter.Active {
		return nil, domain.NewValidationError("sitter_id", "sitter is not accepting bookings")
	}

	sitterPricing, err := s.sitterRepo.GetPricing(ctx, sitterID, serviceID)
	if err != nil {
		return nil, notFoundAsValidation(err, "service_id", "sitter does not offer this service")
	}
	if _, missing := sitterPricing.ResolveAddons(req.Addons); len(missing) > 0 {
		return nil, domain.NewValidationError("addons", "unknown add-ons: "+strings.Join(missing, ", "))
	}

	now := s.now()

	customer := &domain.Customer{
		ID:    uuid.New(),
		Name:  req.Customer.Name,
		Email: req.Customer.Email,
		Phone: req.Customer.Phone,
	}

	pets := make([]domain.Pet, 0, len(req.Pets))
	petIDs := make([]uuid.UUID, 0, len(req.Pets))
	for _, p := range req.Pets {
		pet := domain.Pet{
			ID:         uuid.New(),
			CustomerID: customer.ID,
			Name:       p.Name,
			Type:       p.Type,
			Breed:      p.Breed,
			Notes:      p.Notes,
		}
		pets = append(pets, pet)
		petIDs = append(petIDs, pet.ID)
	}

	booking := &domain.BookingRequest{
		ID:              uuid.New(),
		CustomerID:      customer.ID,
		ServiceID:       serviceID,
		Stay:            stay,
		RequestedAddons: append([]string(nil), req.Addons...),
		PetIDs:          petIDs,
		Location: domain.LocationDetails{
			Address:            req.Location.Address,
			City:               req.Location.City,
			PostalCode:         req.Location.PostalCode,
			AccessInstructions: req.Location.AccessInstructions,
		},
		Notes:     req.Notes,
		Status:    domain.BookingPendingAcceptance,
		Version:   1,
		Payment:   domain.Payment{Status: domain.PaymentUnpaid},
		CreatedAt: now,
		UpdatedAt: now,
	}

	intake := &domain.Intake{
		Customer:   customer,
		Pets:       pets,
		Booking:    booking,
		Recipients: []domain.RecipientEntry{domain.NewRecipientEntry(booking.ID, sitterID, serviceID, now)},
	}

	if err := s.bookingRepo.CreateBookingRequest(ctx, intake); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"customer_id": booking.CustomerID,
		"sitter_id":   sitterID,
		"nights":      stay.Nights(),
	}).Info("booking request created")

	event := domain.NewBookingEvent(domain.EventBookingRequested, booking, now)
	event.SitterIDs = []uuid.UUID{sitterID}

	return &CreateBookingResponse{
		BookingID:  booking.ID.String(),
		CustomerID: booking.CustomerID.String(),
		Status:     string(booking.Status),
		Recipients: toRecipientViews(intake.Recipients),
		Warnings:   s.publish(ctx, event),
	}, nil
}

func (s *BookingService) GetBookingRequest(ctx context.Context, bookingID uuid.UUID) (*BookingView, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	recipients, err := s.bookingRepo.ListRecipients(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return toBookingView(booking, recipients), nil
}

// retryOnConflict runs fn until it stops failing with
// domain.ErrConcurrentUpdate or the retry budget is spent. fn is expected
// to re-read the booking on every call.
func (s *BookingService) retryOnConflict(log logrus.FieldLogger, fn func() error) error {
	for attempt := 1; ; attempt++ {
		err := fn()
		if !errors.Is(err, domain.ErrConcurrentUpdate) {
			return err
		}
		if attempt >= s.opts.MaxCommitRetries {
			log.WithField("attempts", attempt).Warn("giving up after repeated concurrent updates")
			return fmt.Errorf("%w: booking request kept changing, retry later", domain.ErrStateConflict)
		}
		log.WithField("attempt", attempt).Debug("booking request changed underneath us, retrying")
	}
}

func notFoundAsValidation(err error, field, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewValidationError(field, msg)
	}
	return err
}
