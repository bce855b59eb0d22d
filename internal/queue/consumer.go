package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"propel_backend/internal/email"
	"propel_backend/internal/logger"
)

// StartEmailConsumer подключается к RabbitMQ и обрабатывает задания
// из email.dispatch через провайдера почты. Держит reconnect-цикл с
// экспоненциальным backoff; завершается только по отмене контекста.
func StartEmailConsumer(ctx context.Context, url string, provider email.Provider) {
	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			logger.Info("email consumer stopped")
			return
		default:
		}

		conn, err := amqp.Dial(url)
		if err != nil {
			logger.Warn("email-consumer: failed to dial broker", "error", err, "retry_in", backoff.String())
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(ctx, conn, provider); err != nil {
			logger.Warn("email-consumer: consume loop ended, reconnecting", "error", err)
			_ = conn.Close()
			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Second):
			}
			continue
		}

		_ = conn.Close()
		return
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, provider email.Provider) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		logger.Warn("email-consumer: set QoS failed", "error", err)
	}

	if _, err := ch.QueueDeclare(EmailQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(EmailQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}

			var job EmailJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				logger.Error("email-consumer: bad message, dropping", "error", err)
				_ = d.Reject(false)
				continue
			}

			if err := DeliverEmailJob(provider, job); err != nil {
				logger.Error("email-consumer: delivery failed, requeueing", "kind", job.Kind, "to", job.To, "error", err)
				_ = d.Nack(false, true)
				continue
			}

			_ = d.Ack(false)
		}
	}
}
