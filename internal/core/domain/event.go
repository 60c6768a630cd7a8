package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBookingRequested EventType = "booking.requested"
	EventBookingAccepted  EventType = "booking.accepted"
	EventBookingDeclined  EventType = "booking.declined"
	EventBookingCancelled EventType = "booking.cancelled"
	EventBookingExpired   EventType = "booking.expired"
	EventBookingCompleted EventType = "booking.completed"
	EventBookingPaid      EventType = "booking.paid"
)

// BookingEvent is emitted after a transition has been committed.
type BookingEvent struct {
	ID         uuid.UUID      `json:"id"`
	Type       EventType      `json:"type"`
	BookingID  uuid.UUID      `json:"booking_id"`
	CustomerID uuid.UUID      `json:"customer_id"`
	SitterIDs  []uuid.UUID    `json:"sitter_ids,omitempty"`
	Status     BookingStatus  `json:"status"`
	Pricing    *CostBreakdown `json:"pricing,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func NewBookingEvent(t EventType, b *BookingRequest, at time.Time) BookingEvent {
	ev := BookingEvent{
		ID:         uuid.New(),
		Type:       t,
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		Status:     b.Status,
		Pricing:    b.Pricing,
		OccurredAt: at,
	}
	if b.SitterID != nil {
		ev.SitterIDs = []uuid.UUID{*b.SitterID}
	}
	return ev
}
