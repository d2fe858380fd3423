package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestProducer_Disabled(t *testing.T) {
	p := NewProducer(nil)
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Publish(context.Background(), TopicProducts, "k", "product_created", nil))
	assert.NoError(t, p.Close())

	var nilProducer *Producer
	assert.NoError(t, nilProducer.Publish(context.Background(), TopicProducts, "k", "x", nil))
}

func TestProducer_Publish(t *testing.T) {
	fw := &fakeWriter{}
	p := &Producer{w: fw}

	err := p.Publish(context.Background(), TopicCheckout, "user-1", "checkout_started", map[string]any{"total": "25.00"})
	require.NoError(t, err)
	require.Len(t, fw.msgs, 1)

	msg := fw.msgs[0]
	assert.Equal(t, TopicCheckout, msg.Topic)
	assert.Equal(t, "user-1", string(msg.Key))

	var ev struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	assert.Equal(t, "checkout_started", ev.Type)
	assert.Equal(t, "25.00", ev.Payload["total"])

	require.NoError(t, p.Close())
	assert.True(t, fw.closed)
}

func TestProducer_PublishError(t *testing.T) {
	p := &Producer{w: &fakeWriter{err: errors.New("broker down")}}
	err := p.Publish(context.Background(), TopicProducts, "k", "product_deleted", nil)
	assert.ErrorContains(t, err, "broker down")
}
