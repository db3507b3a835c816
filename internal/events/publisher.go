package events

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const outcomeQueue = "campaign_events"

// Publisher emits campaign lifecycle events to RabbitMQ. A nil Publisher is
// valid and publishes nothing, so the broker stays optional in local setups.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher connects to RabbitMQ using environment configuration and
// declares the outcome queue
func NewPublisher() (*Publisher, error) {
	host := getEnv("RABBITMQ_HOST", "localhost")
	port := getEnv("RABBITMQ_PORT", "5672")
	user := getEnv("RABBITMQ_USER", "guest")
	pass := getEnv("RABBITMQ_PASS", "guest")

	url := fmt.Sprintf("amqp://%s:%s@%s:%s/", user, pass, host, port)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		outcomeQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	logrus.Info("RabbitMQ event publisher initialized")
	return &Publisher{conn: conn, channel: channel}, nil
}

// PublishCampaignEvent publishes a single campaign event. Best-effort: callers
// log failures rather than fail the operation that triggered the event.
func (p *Publisher) PublishCampaignEvent(event string, campaignID uint, payload map[string]interface{}) error {
	if p == nil || p.channel == nil {
		return nil
	}

	message := map[string]interface{}{
		"event":       event,
		"campaign_id": campaignID,
		"occurred_at": time.Now().UTC().Format(time.RFC3339),
	}
	for key, value := range payload {
		message[key] = value
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.Publish(
		"",           // exchange
		outcomeQueue, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Close closes the channel and connection
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			logrus.WithError(err).Warn("Error closing RabbitMQ channel")
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			logrus.WithError(err).Warn("Error closing RabbitMQ connection")
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
