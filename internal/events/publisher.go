package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/segmentio/kafka-go"
)

const EventTypeOrderPlaced = "order.placed"

// OrderPlaced is published once an order has been written to the ledger.
type OrderPlaced struct {
	OrderID     int64             `json:"order_id"`
	UserID      int64             `json:"user_id"`
	CartID      int64             `json:"cart_id"`
	Items       []domain.CartItem `json:"items"`
	Total       float64           `json:"total"`
	CartCleared bool              `json:"cart_cleared"`
	PlacedAt    time.Time         `json:"placed_at"`
}

func NewOrderPlaced(order *domain.Order, cartCleared bool) OrderPlaced {
	return OrderPlaced{
		OrderID:     order.ID,
		UserID:      order.UserID,
		CartID:      order.CartID,
		Items:       domain.CloneItems(order.Items),
		Total:       order.Total,
		CartCleared: cartCleared,
		PlacedAt:    order.CreatedAt,
	}
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlaced) error
	Close() error
}

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(topic string, brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return NewKafkaPublisherWithWriter(w)
}

func NewKafkaPublisherWithWriter(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, event OrderPlaced) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order placed event failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.UserID, 10)), // per-user ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventTypeOrderPlaced)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish order %d failed: %w", event.OrderID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events. It is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(context.Context, OrderPlaced) error { return nil }
func (NoopPublisher) Close() error { return nil }
