package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/sitterbook/internal/core/domain"
	"github.com/srgjo27/sitterbook/internal/pkg/validator"
)

// CancelBookingRequest withdraws a pending request on the customer's or an
// operator's behalf. The request ends up DECLINED.
func (s *BookingService) CancelBookingRequest(ctx context.Context, bookingID uuid.UUID, req CancelRequest) (*TransitionResponse, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, &domain.ValidationError{Fields: fields}
	}

	log := s.log.WithField("booking_id", bookingID)
	now := s.now()

	var booking *domain.BookingRequest
	err := s.retryOnConflict(log, func() error {
		var err error
		booking, err = s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if !booking.Status.IsPending() {
			return domain.ErrAlreadyResolved
		}
		return s.bookingRepo.TransitionStatus(ctx, booking.Ref(), domain.BookingDeclined, now)
	})
	if err != nil {
		return nil, err
	}

	if err := booking.Transition(domain.BookingDeclined, now); err != nil {
		return nil, err
	}
	s.invalidateQuotes(ctx, bookingID)
	log.WithField("reason", req.Reason).Info("booking request cancelled")

	event := domain.NewBookingEvent(domain.EventBookingCancelled, booking, now)
	event.Reason = req.Reason

	return &TransitionResponse{
		BookingID: bookingID.String(),
		Status:    string(booking.Status),
		Warnings:  s.publish(ctx, event),
	}, nil
}

// CompleteBookingRequest closes an accepted booking once its stay is over.
func (s *BookingService) CompleteBookingRequest(ctx context.Context, bookingID uuid.UUID) (*TransitionResponse, error) {
	log := s.log.WithField("booking_id", bookingID)
	now := s.now()
	today := startOfDay(now)

	var booking *domain.BookingRequest
	err := s.retryOnConflict(log, func() error {
		var err error
		booking, err = s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		switch booking.Status {
		case domain.BookingAccepted:
		case domain.BookingPendingAcceptance:
			return fmt.Errorf("%w: booking request has not been accepted", domain.ErrStateConflict)
		default:
			return domain.ErrAlreadyResolved
		}
		if today.Before(booking.Stay.End) {
			return fmt.Errorf("%w: stay ends on %s", domain.ErrStateConflict, booking.Stay.End.Format(domain.DateLayout))
		}
		return s.bookingRepo.TransitionStatus(ctx, booking.Ref(), domain.BookingCompleted, now)
	})
	if err != nil {
		return nil, err
	}

	return s.afterTransition(ctx, booking, domain.BookingCompleted, domain.EventBookingCompleted, now, log)
}

func (s *BookingService) afterTransition(ctx context.Context, booking *domain.BookingRequest, to domain.BookingStatus, evType domain.EventType, at time.Time, log logrus.FieldLogger) (*TransitionResponse, error) {
	if err := booking.Transition(to, at); err != nil {
		return nil, err
	}
	s.invalidateQuotes(ctx, booking.ID)
	log.WithField("status", to).Info("booking request transitioned")

	return &TransitionResponse{
		BookingID: booking.ID.String(),
		Status:    string(booking.Status),
		Warnings:  s.publish(ctx, domain.NewBookingEvent(evType, booking, at)),
	}, nil
}

// RunBackgroundCleanup periodically expires pending requests whose stay has
// already started and completes accepted bookings whose stay is over. It
// returns when ctx is cancelled.
func (s *BookingService) RunBackgroundCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.WithField("interval", interval.String()).Info("background worker started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info("background worker stopped")
			return
		case <-ticker.C:
			s.RunCleanupOnce(ctx)
		}
	}
}

// RunCleanupOnce performs a single sweep.
func (s *BookingService) RunCleanupOnce(ctx context.Context) {
	today := startOfDay(s.now())
	s.processExpiredRequests(ctx, today)
	s.processFinishedStays(ctx, today)
}

func (s *BookingService) processExpiredRequests(ctx context.Context, today time.Time) {
	refs, err := s.bookingRepo.GetExpiredRequests(ctx, today, s.opts.CleanupBatchSize)
	if err != nil {
		s.log.WithError(err).Error("failed to fetch expired booking requests")
		return
	}
	if len(refs) == 0 {
		return
	}

	s.log.WithField("count", len(refs)).Info("expiring booking requests")
	for _, ref := range refs {
		s.sweepOne(ctx, ref, domain.BookingExpired, domain.EventBookingExpired)
	}
}

func (s *BookingService) processFinishedStays(ctx context.Context, today time.Time) {
	refs, err := s.bookingRepo.GetFinishedStays(ctx, today, s.opts.CleanupBatchSize)
	if err != nil {
		s.log.WithError(err).Error("failed to fetch finished stays")
		return
	}
	if len(refs) == 0 {
		return
	}

	s.log.WithField("count", len(refs)).Info("completing finished stays")
	for _, ref := range refs {
		s.sweepOne(ctx, ref, domain.BookingCompleted, domain.EventBookingCompleted)
	}
}

// sweepOne applies a background transition. Losing the version race means
// someone else resolved the booking first, which is fine.
func (s *BookingService) sweepOne(ctx context.Context, ref domain.BookingRef, to domain.BookingStatus, evType domain.EventType) {
	log := s.log.WithFields(logrus.Fields{"booking_id": ref.ID, "status": to})
	now := s.now()

	if err := s.bookingRepo.TransitionStatus(ctx, ref, to, now); err != nil {
		if errors.Is(err, domain.ErrConcurrentUpdate) {
			log.Debug("booking request changed before sweep, skipping")
			return
		}
		log.WithError(err).Error("background transition failed")
		return
	}
	s.invalidateQuotes(ctx, ref.ID)

	booking, err := s.bookingRepo.GetByID(ctx, ref.ID)
	if err != nil {
		log.WithError(err).Warn("transitioned booking could not be reloaded, event not published")
		return
	}
	log.Info("booking request transitioned by background worker")
	s.publish(ctx, domain.NewBookingEvent(evType, booking, now))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
