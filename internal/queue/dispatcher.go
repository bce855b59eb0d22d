package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"propel_backend/internal/email"
	"propel_backend/internal/logger"
)

// Dispatcher - асинхронная диспетчеризация почтовых заданий.
// Ошибки логируются и возвращаются, чтобы вызывающий мог их игнорировать,
// не прерывая основной поток запроса.
type Dispatcher interface {
	Dispatch(ctx context.Context, job EmailJob) error
}

// AMQPDispatcher публикует задания в RabbitMQ. Сообщения persistent,
// очередь durable - задания переживают рестарт брокера.
type AMQPDispatcher struct {
	url string
}

func NewAMQPDispatcher(url string) *AMQPDispatcher {
	return &AMQPDispatcher{url: url}
}

func (d *AMQPDispatcher) Dispatch(ctx context.Context, job EmailJob) error {
	conn, err := amqp.Dial(d.url)
	if err != nil {
		logger.Error("rabbitmq: dial failed", "error", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("rabbitmq: channel open failed", "error", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Объявление очереди идемпотентно
	if _, err := ch.QueueDeclare(EmailQueueName, true, false, false, false, nil); err != nil {
		logger.Error("rabbitmq: queue declare failed", "error", err)
		return err
	}

	body, err := json.Marshal(job)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", EmailQueueName, false, false, pub); err != nil {
		logger.Error("rabbitmq: publish failed", "error", err)
		return err
	}

	return nil
}

// GoroutineDispatcher - fallback без брокера: письмо уходит из горутины.
// Семантика для вызывающего та же - fire-and-forget.
type GoroutineDispatcher struct {
	provider email.Provider
}

func NewGoroutineDispatcher(provider email.Provider) *GoroutineDispatcher {
	return &GoroutineDispatcher{provider: provider}
}

func (d *GoroutineDispatcher) Dispatch(ctx context.Context, job EmailJob) error {
	go func() {
		if err := DeliverEmailJob(d.provider, job); err != nil {
			logger.Error("email dispatch failed", "kind", job.Kind, "to", job.To, "error", err)
		}
	}()
	return nil
}

// DeliverEmailJob доставляет одно задание через провайдера почты
func DeliverEmailJob(provider email.Provider, job EmailJob) error {
	switch job.Kind {
	case EmailKindVerification:
		return provider.SendVerification(job.To, job.Token)
	case EmailKindPasswordReset:
		return provider.SendPasswordReset(job.To, job.Token)
	case EmailKindReport:
		return provider.SendReport(job.To, job.PropertyAddress, job.PDF)
	default:
		logger.Warn("unknown email job kind", "kind", job.Kind)
		return nil
	}
}
