package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_PublishOrderPlaced(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisherWithWriter(w)

	order := &domain.Order{
		ID:        3,
		UserID:    7,
		CartID:    1,
		Items:     []domain.CartItem{{ItemID: 1, Quantity: 3}},
		Total:     44.97,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, p.PublishOrderPlaced(context.Background(), NewOrderPlaced(order, true)))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, "7", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, EventTypeOrderPlaced, string(msg.Headers[0].Value))

	var event OrderPlaced
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, int64(3), event.OrderID)
	assert.Equal(t, order.Items, event.Items)
	assert.True(t, event.CartCleared)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker unavailable")}
	p := NewKafkaPublisherWithWriter(w)

	err := p.PublishOrderPlaced(context.Background(), OrderPlaced{OrderID: 9})
	require.ErrorContains(t, err, "publish order 9 failed")
	require.ErrorContains(t, err, "broker unavailable")
}

func TestKafkaPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, NewKafkaPublisherWithWriter(w).Close())
	assert.True(t, w.closed)
}
