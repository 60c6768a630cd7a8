package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/sitterbook/internal/core/domain"
	"github.com/srgjo27/sitterbook/internal/pkg/validator"
)

// NotifyRecipients offers a pending request to more sitters. Each sitter is
// offered their primary service listing.
func (s *BookingService) NotifyRecipients(ctx context.Context, bookingID uuid.UUID, req NotifyRequest) (*NotifyResponse, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, &domain.ValidationError{Fields: fields}
	}

	sitterIDs := make([]uuid.UUID, 0, len(req.SitterIDs))
	for _, raw := range req.SitterIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, domain.NewValidationError("sitter_ids", "invalid sitter id")
		}
		sitterIDs = append(sitterIDs, id)
	}

	serviceBySitter := make(map[uuid.UUID]uuid.UUID, len(sitterIDs))
	for _, id := range sitterIDs {
		sitter, err := s.sitterRepo.GetSitter(ctx, id)
		if err != nil {
			return nil, notFoundAsValidation(err, "sitter_ids", "unknown sitter "+id.String())
		}
		if !sitter.Active {
			return nil, domain.NewValidationError("sitter_ids", "sitter "+id.String()+" is not accepting bookings")
		}
		listing, err := s.sitterRepo.GetPrimaryService(ctx, id)
		if err != nil {
			return nil, notFoundAsValidation(err, "sitter_ids", "sitter "+id.String()+" has no service listing")
		}
		serviceBySitter[id] = listing.ID
	}

	log := s.log.WithField("booking_id", bookingID)
	now := s.now()

	var (
		booking *domain.BookingRequest
		entries []domain.RecipientEntry
	)

	err := s.retryOnConflict(log, func() error {
		var err error
		booking, err = s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if !booking.Status.IsPending() {
			return domain.ErrAlreadyResolved
		}

		existing, err := s.bookingRepo.ListRecipients(ctx, bookingID)
		if err != nil {
			return err
		}

		entries = entries[:0]
		for _, id := range sitterIDs {
			if domain.FindRecipient(existing, id) != nil {
				return domain.NewValidationError("sitter_ids", "sitter "+id.String()+" was already notified")
			}
			entries = append(entries, domain.NewRecipientEntry(bookingID, id, serviceBySitter[id], now))
		}

		return s.bookingRepo.AddRecipients(ctx, booking.Ref(), entries)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{"added": len(entries)}).Info("booking request offered to more sitters")

	event := domain.NewBookingEvent(domain.EventBookingRequested, booking, now)
	event.SitterIDs = sitterIDs

	return &NotifyResponse{
		BookingID:  bookingID.String(),
		Recipients: toRecipientViews(entries),
		Warnings:   s.publish(ctx, event),
	}, nil
}
