package publisher

import (
	"context"
	"medirdv-service/internal/app/contracts"
	"medirdv-service/internal/pkg/constvars"
	"medirdv-service/internal/pkg/dto/responses"
	"medirdv-service/internal/pkg/exceptions"
	"medirdv-service/internal/pkg/utils"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// amqpChannel is the subset of *amqp091.Channel the publisher needs.
type amqpChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type availabilityPublisher struct {
	Log     *zap.Logger
	Queue   string
	mu      sync.Mutex
	channel amqpChannel
}

func NewAvailabilityPublisher(logger *zap.Logger, rabbitMQConnection *amqp091.Connection, queue string) (contracts.AvailabilityPublisher, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, exceptions.ErrRabbitMQOpenChannel(err)
	}
	return newAvailabilityPublisher(logger, channel, queue)
}

func newAvailabilityPublisher(logger *zap.Logger, channel amqpChannel, queue string) (*availabilityPublisher, error) {
	_, err := channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		return nil, exceptions.ErrRabbitMQDeclare(err, queue)
	}

	return &availabilityPublisher{
		Log:     logger,
		Queue:   queue,
		channel: channel,
	}, nil
}

func (p *availabilityPublisher) PublishAvailabilityChanged(ctx context.Context, event *responses.AvailabilityChangedEvent) error {
	requestID := utils.GetRequestID(ctx)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp091.Table{
		"message_type": "JSON",
		"event":        event.Event,
	}

	message := amqp091.Publishing{
		ContentType:   constvars.MIMEApplicationJSON,
		Body:          body,
		DeliveryMode:  amqp091.Persistent,
		Headers:       headers,
		Timestamp:     event.OccurredAt,
		CorrelationId: requestID,
		Type:          event.Event,
	}

	p.mu.Lock()
	err = p.channel.PublishWithContext(ctx, "", p.Queue, false, false, message)
	p.mu.Unlock()
	if err != nil {
		p.Log.Error("availabilityPublisher.PublishAvailabilityChanged error publishing",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueKey, p.Queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublish(err, p.Queue)
	}

	p.Log.Info("availabilityPublisher.PublishAvailabilityChanged published",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, p.Queue),
		zap.String(constvars.LoggingSubjectTypeKey, event.SubjectType),
		zap.String(constvars.LoggingSubjectIDKey, event.SubjectID),
	)
	return nil
}
