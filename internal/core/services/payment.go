package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/sitterbook/internal/core/domain"
	"github.com/srgjo27/sitterbook/internal/pkg/validator"
)

// MarkPaid records that an accepted booking has been paid. Marking the same
// amount again is a no-op. Payment never touches the frozen breakdown.
func (s *BookingService) MarkPaid(ctx context.Context, bookingID uuid.UUID, req MarkPaidRequest) (*MarkPaidResponse, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, &domain.ValidationError{Fields: fields}
	}
	method := domain.PaymentMethod(req.Method)

	log := s.log.WithField("booking_id", bookingID)
	now := s.now()

	booking, changed, err := s.bookingRepo.MarkPaid(ctx, bookingID, req.AmountCents, method, now)
	if err != nil {
		return nil, err
	}

	resp := &MarkPaidResponse{
		BookingID:       bookingID.String(),
		PaymentStatus:   string(booking.Payment.Status),
		AmountPaidCents: req.AmountCents,
		PaidAt:          booking.Payment.PaidAt,
		Method:          string(booking.Payment.Method),
		AlreadyPaid:     !changed,
	}

	if !changed {
		log.Info("booking already paid with this amount")
		return resp, nil
	}

	if booking.Pricing != nil && booking.Pricing.TotalCostCents != req.AmountCents {
		log.WithFields(logrus.Fields{
			"amount_cents":     req.AmountCents,
			"total_cost_cents": booking.Pricing.TotalCostCents,
		}).Warn("paid amount differs from frozen total")
	}
	log.WithField("method", method).Info("booking marked paid")

	resp.Warnings = s.publish(ctx, domain.NewBookingEvent(domain.EventBookingPaid, booking, now))
	return resp, nil
}
