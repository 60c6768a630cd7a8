package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/srgjo27/sitterbook/internal/core/domain"
)

// publish delivers an event after its transition has been committed. A
// failure never rolls anything back; it is logged and reported to the
// caller as a warning.
func (s *BookingService) publish(ctx context.Context, event domain.BookingEvent) []string {
	if s.publisher == nil {
		return nil
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.PublishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, event); err != nil {
		s.log.WithFields(logrus.Fields{
			"booking_id": event.BookingID,
			"event":      event.Type,
		}).WithError(err).Error("failed to publish booking event")
		return []string{WarningNotificationFailed}
	}
	return nil
}
