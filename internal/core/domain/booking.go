package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPendingAcceptance BookingStatus = "PENDING_ACCEPTANCE"
	BookingAccepted          BookingStatus = "ACCEPTED"
	BookingCompleted         BookingStatus = "COMPLETED"
	BookingDeclined          BookingStatus = "DECLINED"
	BookingExpired           BookingStatus = "EXPIRED"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPendingAcceptance: {BookingAccepted, BookingDeclined, BookingExpired},
	BookingAccepted:          {BookingCompleted},
}

// CanTransitionTo reports whether next is reachable from s in one step.
// Transitions are one-way: no status is ever re-entered.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsPending() bool {
	return s == BookingPendingAcceptance
}

func (s BookingStatus) IsPayable() bool {
	return s == BookingAccepted || s == BookingCompleted
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPendingAcceptance, BookingAccepted, BookingCompleted, BookingDeclined, BookingExpired:
		return true
	}
	return false
}

type LocationDetails struct {
	Address            string `json:"address"`
	City               string `json:"city"`
	PostalCode         string `json:"postal_code"`
	AccessInstructions string `json:"access_instructions,omitempty"`
}

type BookingRequest struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	SitterID        *uuid.UUID
	ServiceID       uuid.UUID
	Stay            StayWindow
	RequestedAddons []string
	PetIDs          []uuid.UUID
	Location        LocationDetails
	Notes           string
	Status          BookingStatus
	Version         int

	// Pricing stays nil until the booking is accepted; from then on it is
	// frozen together with AppliedAddons.
	Pricing       *CostBreakdown
	AppliedAddons []AppliedAddon
	Payment       Payment

	CreatedAt  time.Time
	UpdatedAt  time.Time
	AcceptedAt *time.Time
	ResolvedAt *time.Time
}

// BookingRef is the minimal handle needed to drive a compare-and-swap
// transition on a booking request.
type BookingRef struct {
	ID      uuid.UUID
	Version int
}

func (b *BookingRequest) Ref() BookingRef {
	return BookingRef{ID: b.ID, Version: b.Version}
}

// AcceptanceCommit is everything the store writes atomically when a
// recipient wins a booking request.
type AcceptanceCommit struct {
	Booking       BookingRef
	SitterID      uuid.UUID
	ServiceID     uuid.UUID
	Pricing       CostBreakdown
	AppliedAddons []AppliedAddon
	AcceptedAt    time.Time
}

// Intake groups the records created together when a reservation inquiry
// arrives.
type Intake struct {
	Customer   *Customer
	Pets       []Pet
	Booking    *BookingRequest
	Recipients []RecipientEntry
}

// Accept applies a commit to an in-memory booking. Stores call it after
// their own compare-and-swap succeeded.
func (b *BookingRequest) Accept(c AcceptanceCommit) error {
	if !b.Status.CanTransitionTo(BookingAccepted) {
		return ErrAlreadyResolved
	}
	sitterID := c.SitterID
	pricing := c.Pricing
	acceptedAt := c.AcceptedAt

	b.Status = BookingAccepted
	b.SitterID = &sitterID
	b.ServiceID = c.ServiceID
	b.Pricing = &pricing
	b.AppliedAddons = append([]AppliedAddon(nil), c.AppliedAddons...)
	b.Payment = Payment{Status: PaymentUnpaid}
	b.AcceptedAt = &acceptedAt
	b.ResolvedAt = &acceptedAt
	b.UpdatedAt = acceptedAt
	b.Version++
	return nil
}

// Transition moves the booking along the state machine without touching
// money fields.
func (b *BookingRequest) Transition(next BookingStatus, at time.Time) error {
	if !b.Status.CanTransitionTo(next) {
		if b.Status.IsPending() {
			return ErrStateConflict
		}
		return ErrAlreadyResolved
	}
	if b.Status.IsPending() {
		b.ResolvedAt = &at
	}
	b.Status = next
	b.UpdatedAt = at
	b.Version++
	return nil
}
