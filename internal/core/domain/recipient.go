package domain

import (
	"time"

	"github.com/google/uuid"
)

type RecipientStatus string

const (
	RecipientNotified RecipientStatus = "NOTIFIED"
	RecipientAccepted RecipientStatus = "ACCEPTED"
	RecipientDeclined RecipientStatus = "DECLINED"
	RecipientLost     RecipientStatus = "LOST"
)

type RecipientEntry struct {
	BookingID   uuid.UUID
	SitterID    uuid.UUID
	ServiceID   uuid.UUID
	Status      RecipientStatus
	NotifiedAt  time.Time
	RespondedAt *time.Time
}

func (r *RecipientEntry) IsEligible() bool {
	return r.Status == RecipientNotified
}

func NewRecipientEntry(bookingID, sitterID, serviceID uuid.UUID, at time.Time) RecipientEntry {
	return RecipientEntry{
		BookingID:  bookingID,
		SitterID:   sitterID,
		ServiceID:  serviceID,
		Status:     RecipientNotified,
		NotifiedAt: at,
	}
}

// FindRecipient returns the entry for sitterID, or nil.
func FindRecipient(entries []RecipientEntry, sitterID uuid.UUID) *RecipientEntry {
	for i := range entries {
		if entries[i].SitterID == sitterID {
			return &entries[i]
		}
	}
	return nil
}

// OutstandingRecipients counts entries still waiting for an answer.
func OutstandingRecipients(entries []RecipientEntry) int {
	n := 0
	for _, e := range entries {
		if e.Status == RecipientNotified {
			n++
		}
	}
	return n
}
