package messaging

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/srgjo27/sitterbook/internal/core/domain"
)

// LogPublisher writes events to the log. Used when no broker is configured.
type LogPublisher struct {
	log logrus.FieldLogger
}

func NewLogPublisher(log logrus.FieldLogger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.BookingEvent) error {
	p.log.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"booking_id": event.BookingID,
		"status":     event.Status,
		"sitter_ids": event.SitterIDs,
	}).Info("booking event")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
