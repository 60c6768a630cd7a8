package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/sitterbook/internal/core/domain"
	"github.com/srgjo27/sitterbook/internal/core/pricing"
)

// AcceptBookingRequest lets one notified sitter win a pending request. The
// price is computed from the sitter's configuration as it is right now and
// is frozen onto the booking in the same commit that flips the status, so
// at most one acceptance can ever succeed.
func (s *BookingService) AcceptBookingRequest(ctx context.Context, bookingID, sitterID uuid.UUID) (*AcceptResponse, error) {
	log := s.log.WithFields(logrus.Fields{"booking_id": bookingID, "sitter_id": sitterID})

	var (
		booking *domain.BookingRequest
		commit  domain.AcceptanceCommit
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

		entry, err := s.eligibleRecipient(ctx, bookingID, sitterID)
		if err != nil {
			return err
		}

		sitterPricing, err := s.sitterRepo.GetPricing(ctx, sitterID, entry.ServiceID)
		if err != nil {
			return err
		}

		breakdown, applied, err := s.price(booking, sitterPricing, log)
		if err != nil {
			return err
		}

		commit = domain.AcceptanceCommit{
			Booking:       booking.Ref(),
			SitterID:      sitterID,
			ServiceID:     entry.ServiceID,
			Pricing:       breakdown,
			AppliedAddons: applied,
			AcceptedAt:    s.now(),
		}
		return s.bookingRepo.CommitAcceptance(ctx, commit)
	})
	if err != nil {
		return nil, err
	}

	if err := booking.Accept(commit); err != nil {
		return nil, err
	}
	s.invalidateQuotes(ctx, bookingID)

	log.WithField("total_cost_cents", commit.Pricing.TotalCostCents).Info("booking request accepted")

	return &AcceptResponse{
		BookingID: bookingID.String(),
		SitterID:  sitterID.String(),
		ServiceID: commit.ServiceID.String(),
		Status:    string(booking.Status),
		Pricing:   commit.Pricing,
		Addons:    commit.AppliedAddons,
		Warnings:  s.publish(ctx, domain.NewBookingEvent(domain.EventBookingAccepted, booking, commit.AcceptedAt)),
	}, nil
}

// DeclineBookingRequest records a sitter's refusal. When it was the last
// outstanding recipient the whole request becomes DECLINED.
func (s *BookingService) DeclineBookingRequest(ctx context.Context, bookingID, sitterID uuid.UUID) (*DeclineResponse, error) {
	log := s.log.WithFields(logrus.Fields{"booking_id": bookingID, "sitter_id": sitterID})

	var (
		booking         *domain.BookingRequest
		remaining       int
		bookingDeclined bool
	)
	now := s.now()

	err := s.retryOnConflict(log, func() error {
		var err error
		booking, err = s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if !booking.Status.IsPending() {
			return domain.ErrAlreadyResolved
		}

		recipients, err := s.bookingRepo.ListRecipients(ctx, bookingID)
		if err != nil {
			return err
		}
		entry := domain.FindRecipient(recipients, sitterID)
		if entry == nil || !entry.IsEligible() {
			return domain.ErrNotEligible
		}
		remaining = domain.OutstandingRecipients(recipients) - 1

		bookingDeclined, err = s.bookingRepo.DeclineRecipient(ctx, booking.Ref(), sitterID, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := &DeclineResponse{
		BookingID:     bookingID.String(),
		SitterID:      sitterID.String(),
		BookingStatus: string(domain.BookingPendingAcceptance),
		Remaining:     remaining,
	}

	if !bookingDeclined {
		log.WithField("remaining", remaining).Info("recipient declined booking request")
		return resp, nil
	}

	if err := booking.Transition(domain.BookingDeclined, now); err != nil {
		return nil, err
	}
	s.invalidateQuotes(ctx, bookingID)
	log.Info("last recipient declined, booking request declined")

	event := domain.NewBookingEvent(domain.EventBookingDeclined, booking, now)
	event.SitterIDs = []uuid.UUID{sitterID}

	resp.BookingStatus = string(booking.Status)
	resp.Remaining = 0
	resp.Warnings = s.publish(ctx, event)
	return resp, nil
}

// PreviewCost quotes what the booking would cost with the given sitter and
// service. It never changes state. Pricing configuration is always read
// fresh; only the computed breakdown is cached. Once a booking is accepted
// the winner's frozen breakdown is returned instead.
func (s *BookingService) PreviewCost(ctx context.Context, bookingID, sitterID, serviceID uuid.UUID) (*QuoteResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	resp := &QuoteResponse{
		BookingID: bookingID.String(),
		SitterID:  sitterID.String(),
		ServiceID: serviceID.String(),
	}

	switch {
	case booking.Status.IsPayable():
		if booking.SitterID == nil || *booking.SitterID != sitterID || booking.ServiceID != serviceID || booking.Pricing == nil {
			return nil, domain.ErrAlreadyResolved
		}
		resp.Frozen = true
		resp.Pricing = *booking.Pricing
		return resp, nil
	case !booking.Status.IsPending():
		return nil, domain.ErrAlreadyResolved
	}

	sitterPricing, err := s.sitterRepo.GetPricing(ctx, sitterID, serviceID)
	if err != nil {
		return nil, err
	}

	field := quoteCacheField(sitterID, serviceID, sitterPricing)
	if cached, ok := s.cachedQuote(ctx, bookingID, field); ok {
		resp.Pricing = *cached
		return resp, nil
	}

	log := s.log.WithFields(logrus.Fields{"booking_id": bookingID, "sitter_id": sitterID})
	breakdown, _, err := s.price(booking, sitterPricing, log)
	if err != nil {
		return nil, err
	}

	s.storeQuote(ctx, bookingID, field, breakdown)
	resp.Pricing = breakdown
	return resp, nil
}

// AuditBookingRequest recomputes an accepted booking's money fields from
// its frozen inputs and reports whether they still agree.
func (s *BookingService) AuditBookingRequest(ctx context.Context, bookingID uuid.UUID) (*AuditResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Pricing == nil {
		return nil, fmt.Errorf("%w: booking %s has no frozen pricing", domain.ErrStateConflict, booking.Status)
	}

	recomputed, err := pricing.Recompute(*booking.Pricing, booking.AppliedAddons)
	if err != nil {
		return nil, err
	}

	consistent := recomputed == *booking.Pricing
	if !consistent {
		s.log.WithField("booking_id", bookingID).Error("frozen pricing does not match its recomputation")
	}

	return &AuditResponse{
		BookingID:  bookingID.String(),
		Consistent: consistent,
		Stored:     *booking.Pricing,
		Recomputed: recomputed,
	}, nil
}

func (s *BookingService) eligibleRecipient(ctx context.Context, bookingID, sitterID uuid.UUID) (*domain.RecipientEntry, error) {
	recipients, err := s.bookingRepo.ListRecipients(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	entry := domain.FindRecipient(recipients, sitterID)
	if entry == nil || !entry.IsEligible() {
		return nil, domain.ErrNotEligible
	}
	return entry, nil
}

func (s *BookingService) price(b *domain.BookingRequest, sp *domain.SitterPricing, log logrus.FieldLogger) (domain.CostBreakdown, []domain.AppliedAddon, error) {
	applied, missing := sp.ResolveAddons(b.RequestedAddons)
	if len(missing) > 0 {
		log.WithField("addons", missing).Warn("requested add-ons no longer offered, not charged")
	}

	breakdown, err := pricing.ComputeCost(pricing.Input{
		Nights:        b.Stay.Nights(),
		BaseRateCents: sp.Service.RateCents,
		AddonsCents:   domain.AddonPrices(applied),
		Tiers:         sp.Tiers,
	})
	if err != nil {
		return domain.CostBreakdown{}, nil, err
	}
	return breakdown, applied, nil
}
