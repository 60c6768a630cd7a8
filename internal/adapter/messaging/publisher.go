package messaging

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/srgjo27/sitterbook/internal/core/ports"
	"github.com/srgjo27/sitterbook/internal/platform/config"
)

// Publisher is an EventPublisher that owns a broker connection.
type Publisher interface {
	ports.EventPublisher
	Close() error
}

func NewPublisher(cfg config.MessagingConfig, log logrus.FieldLogger) (Publisher, error) {
	switch cfg.Driver {
	case "rabbitmq":
		log.WithField("exchange", cfg.RabbitMQ.Exchange).Info("publishing events to rabbitmq")
		return NewRabbitMQPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
	case "kafka":
		log.WithFields(logrus.Fields{"brokers": cfg.Kafka.Brokers, "topic": cfg.Kafka.Topic}).Info("publishing events to kafka")
		return NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic), nil
	case "log", "":
		return NewLogPublisher(log), nil
	default:
		return nil, fmt.Errorf("unknown messaging driver %q", cfg.Driver)
	}
}
