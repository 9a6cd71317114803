package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"boxoffice/pkg/logger"
)

// Deliverer hands a confirmation to the patron. Delivery channels (SMS,
// e-mail) live behind this interface.
type Deliverer interface {
	Deliver(ctx context.Context, notification *BookingNotification) error
}

// LogDeliverer records confirmations in the log; it is the default when no
// delivery channel is configured.
type LogDeliverer struct {
	Log *logger.Logger
}

func (d LogDeliverer) Deliver(ctx context.Context, n *BookingNotification) error {
	d.Log.InfoContext(ctx, "Booking confirmation",
		"booking_id", n.BookingID,
		"event", n.EventTitle,
		"tier", n.TierName,
		"qty", n.Qty,
		"phone", n.MaskedPhone(),
		"ticket_hash", n.TicketHash,
	)
	return nil
}

type ConsumerConfig struct {
	Brokers              []string
	GroupID              string
	Topics               []string
	SessionTimeout       time.Duration
	Heartbeat            time.Duration
	OffsetOldest         bool
	MaxRetries           int
	RetryBackoffDuration time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:              []string{"localhost:9092"},
		GroupID:              "boxoffice-notifier",
		Topics:               []string{"booking-notifications"},
		SessionTimeout:       30 * time.Second,
		Heartbeat:            3 * time.Second,
		OffsetOldest:         true,
		MaxRetries:           3,
		RetryBackoffDuration: time.Second,
	}
}

type Consumer struct {
	group     sarama.ConsumerGroup
	config    *ConsumerConfig
	deliverer Deliverer
	log       *logger.Logger
}

func NewConsumer(config *ConsumerConfig, deliverer Deliverer, log *logger.Logger) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = config.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = config.Heartbeat
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}
	if log == nil {
		log = logger.GetDefault()
	}

	return &Consumer{group: group, config: config, deliverer: deliverer, log: log}, nil
}

// Run consumes with numWorkers group members until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context, numWorkers int) error {
	c.log.Info("Starting notification workers", "workers", numWorkers, "topics", c.config.Topics)

	go func() {
		for err := range c.group.Errors() {
			c.log.Error("Consumer group error", "error", err)
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			handler := &groupHandler{
				workerID:  workerID,
				deliverer: c.deliverer,
				config:    c.config,
				log:       c.log,
			}
			// Consume returns on every rebalance and must be called again
			for ctx.Err() == nil {
				if err := c.group.Consume(ctx, c.config.Topics, handler); err != nil {
					if errors.Is(err, sarama.ErrClosedConsumerGroup) {
						return
					}
					c.log.Error("Consume failed", "worker", workerID, "error", err)
				}
			}
		}(i)
	}

	wg.Wait()
	return nil
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

type groupHandler struct {
	workerID  int
	deliverer Deliverer
	config    *ConsumerConfig
	log       *logger.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	h.log.Debug("Consumer group session started", "worker", h.workerID)
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	h.log.Debug("Consumer group session ended", "worker", h.workerID)
	return nil
}

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			// A failed message is logged and skipped.
			if err := h.processMessage(session.Context(), message); err != nil {
				h.log.Error("Error processing message", "worker", h.workerID, "offset", message.Offset, "error", err)
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *groupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var notification BookingNotification
	if err := json.Unmarshal(message.Value, &notification); err != nil {
		return fmt.Errorf("failed to unmarshal notification: %w", err)
	}
	if notification.Type != NotificationTypeBookingConfirmed {
		h.log.Debug("Skipping notification", "type", notification.Type)
		return nil
	}
	return h.executeWithRetry(ctx, &notification)
}

func (h *groupHandler) executeWithRetry(ctx context.Context, n *BookingNotification) error {
	backoff := h.config.RetryBackoffDuration

	for attempt := 0; ; attempt++ {
		err := h.deliverer.Deliver(ctx, n)
		if err == nil {
			return nil
		}
		if attempt == h.config.MaxRetries {
			return fmt.Errorf("delivery failed after %d attempts: %w", attempt+1, err)
		}

		// Exponential backoff
		delay := backoff * time.Duration(1<<attempt)
		h.log.Warn("Retrying delivery", "worker", h.workerID, "attempt", attempt+1, "delay", delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
