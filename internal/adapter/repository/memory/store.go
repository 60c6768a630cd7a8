// Package memory is an in-process implementation of the booking and sitter
// repositories. It keeps the same version compare-and-swap rules as the
// Postgres store and is used for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/sitterbook/internal/core/domain"
)

type Store struct {
	mu sync.RWMutex

	customers      map[uuid.UUID]domain.Customer
	customerByMail map[string]uuid.UUID
	pets           map[uuid.UUID]domain.Pet
	bookings       map[uuid.UUID]*domain.BookingRequest
	recipients     map[uuid.UUID][]domain.RecipientEntry

	sitters  map[uuid.UUID]domain.Sitter
	services map[uuid.UUID]domain.ServiceListing
	addons   map[uuid.UUID][]domain.Addon
	tiers    map[uuid.UUID][]domain.DiscountTier
}

func NewStore() *Store {
	return &Store{
		customers:      make(map[uuid.UUID]domain.Customer),
		customerByMail: make(map[string]uuid.UUID),
		pets:           make(map[uuid.UUID]domain.Pet),
		bookings:       make(map[uuid.UUID]*domain.BookingRequest),
		recipients:     make(map[uuid.UUID][]domain.RecipientEntry),
		sitters:        make(map[uuid.UUID]domain.Sitter),
		services:       make(map[uuid.UUID]domain.ServiceListing),
		addons:         make(map[uuid.UUID][]domain.Addon),
		tiers:          make(map[uuid.UUID][]domain.DiscountTier),
	}
}

func (s *Store) CreateBookingRequest(ctx context.Context, intake *domain.Intake) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookings[intake.Booking.ID]; exists {
		return domain.NewValidationError("id", "booking request already exists")
	}

	// Keys match exactly, like the unique constraints in Postgres. The
	// service normalizes emails and pet names before they get here.
	email := intake.Customer.Email
	if id, ok := s.customerByMail[email]; ok {
		intake.Customer.ID = id
	}
	s.customers[intake.Customer.ID] = *intake.Customer
	s.customerByMail[email] = intake.Customer.ID
	intake.Booking.CustomerID = intake.Customer.ID

	petIDs := make([]uuid.UUID, 0, len(intake.Pets))
	for i := range intake.Pets {
		pet := &intake.Pets[i]
		pet.CustomerID = intake.Customer.ID
		if existing, ok := s.findPet(pet.CustomerID, pet.Name); ok {
			pet.ID = existing
		}
		s.pets[pet.ID] = *pet
		petIDs = append(petIDs, pet.ID)
	}
	intake.Booking.PetIDs = petIDs

	s.bookings[intake.Booking.ID] = cloneBooking(intake.Booking)
	s.recipients[intake.Booking.ID] = append([]domain.RecipientEntry(nil), intake.Recipients...)
	return nil
}

func (s *Store) findPet(customerID uuid.UUID, name string) (uuid.UUID, bool) {
	for id, p := range s.pets {
		if p.CustomerID == customerID && p.Name == name {
			return id, true
		}
	}
	return uuid.Nil, false
}

func (s *Store) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.BookingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneBooking(b), nil
}

func (s *Store) ListRecipients(ctx context.Context, bookingID uuid.UUID) ([]domain.RecipientEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.bookings[bookingID]; !ok {
		return nil, domain.ErrNotFound
	}
	return append([]domain.RecipientEntry(nil), s.recipients[bookingID]...), nil
}

func (s *Store) AddRecipients(ctx context.Context, ref domain.BookingRef, entries []domain.RecipientEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.casPending(ref)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if domain.FindRecipient(s.recipients[ref.ID], e.SitterID) != nil {
			return domain.NewValidationError("sitter_ids", "sitter "+e.SitterID.String()+" was already notified")
		}
	}

	s.recipients[ref.ID] = append(s.recipients[ref.ID], entries...)
	b.Version++
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *Store) CommitAcceptance(ctx context.Context, commit domain.AcceptanceCommit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.casPending(commit.Booking)
	if err != nil {
		return err
	}
	entry := domain.FindRecipient(s.recipients[b.ID], commit.SitterID)
	if entry == nil || !entry.IsEligible() {
		return domain.ErrNotEligible
	}

	if err := b.Accept(commit); err != nil {
		return err
	}

	entries := s.recipients[b.ID]
	for i := range entries {
		if entries[i].Status != domain.RecipientNotified {
			continue
		}
		at := commit.AcceptedAt
		entries[i].RespondedAt = &at
		if entries[i].SitterID == commit.SitterID {
			entries[i].Status = domain.RecipientAccepted
		} else {
			entries[i].Status = domain.RecipientLost
		}
	}
	return nil
}

func (s *Store) DeclineRecipient(ctx context.Context, ref domain.BookingRef, sitterID uuid.UUID, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.casPending(ref)
	if err != nil {
		return false, err
	}
	entry := domain.FindRecipient(s.recipients[ref.ID], sitterID)
	if entry == nil || !entry.IsEligible() {
		return false, domain.ErrNotEligible
	}

	entry.Status = domain.RecipientDeclined
	entry.RespondedAt = &at

	if domain.OutstandingRecipients(s.recipients[ref.ID]) > 0 {
		b.Version++
		b.UpdatedAt = at
		return false, nil
	}
	if err := b.Transition(domain.BookingDeclined, at); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) TransitionStatus(ctx context.Context, ref domain.BookingRef, to domain.BookingStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[ref.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if b.Version != ref.Version {
		return domain.ErrConcurrentUpdate
	}
	return b.Transition(to, at)
}

func (s *Store) MarkPaid(ctx context.Context, bookingID uuid.UUID, amountCents int64, method domain.PaymentMethod, at time.Time) (*domain.BookingRequest, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, false, domain.ErrNotFound
	}
	changed, err := b.ApplyPayment(amountCents, method, at)
	if err != nil {
		return nil, false, err
	}
	return cloneBooking(b), changed, nil
}

func (s *Store) GetExpiredRequests(ctx context.Context, today time.Time, limit int) ([]domain.BookingRef, error) {
	return s.refsWhere(limit, func(b *domain.BookingRequest) bool {
		return b.Status == domain.BookingPendingAcceptance && b.Stay.Start.Before(today)
	}), nil
}

func (s *Store) GetFinishedStays(ctx context.Context, today time.Time, limit int) ([]domain.BookingRef, error) {
	return s.refsWhere(limit, func(b *domain.BookingRequest) bool {
		return b.Status == domain.BookingAccepted && !b.Stay.End.After(today)
	}), nil
}

func (s *Store) refsWhere(limit int, match func(*domain.BookingRequest) bool) []domain.BookingRef {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*domain.BookingRequest
	for _, b := range s.bookings {
		if match(b) {
			matched = append(matched, b)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	refs := make([]domain.BookingRef, 0, len(matched))
	for _, b := range matched {
		if limit > 0 && len(refs) >= limit {
			break
		}
		refs = append(refs, b.Ref())
	}
	return refs
}

// casPending returns the stored booking when it is still pending at the
// given version. Must be called with s.mu held.
func (s *Store) casPending(ref domain.BookingRef) (*domain.BookingRequest, error) {
	b, ok := s.bookings[ref.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !b.Status.IsPending() || b.Version != ref.Version {
		return nil, domain.ErrConcurrentUpdate
	}
	return b, nil
}

func cloneBooking(b *domain.BookingRequest) *domain.BookingRequest {
	c := *b
	c.RequestedAddons = append([]string(nil), b.RequestedAddons...)
	c.PetIDs = append([]uuid.UUID(nil), b.PetIDs...)
	c.AppliedAddons = append([]domain.AppliedAddon(nil), b.AppliedAddons...)
	if b.SitterID != nil {
		id := *b.SitterID
		c.SitterID = &id
	}
	if b.Pricing != nil {
		p := *b.Pricing
		c.Pricing = &p
	}
	if b.Payment.AmountCents != nil {
		amount := *b.Payment.AmountCents
		c.Payment.AmountCents = &amount
	}
	return &c
}
