package wmPubsub

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestPubSub_PublishAndConsume(t *testing.T) {
	ch := make(chan []byte, 1)
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	received := make(chan []byte, 1)
	sub := New(
		WithChannel(ch),
		WithContext(ctx),
		WithLogger(discardLogger),
		WithTopic("markets"),
		WithHandler(func(msg []byte) error {
			received <- msg
			return nil
		}),
	)
	err := sub.Subscribe()
	assert.NoError(t, err)

	pub := New(WithChannel(ch), WithContext(ctx), WithTopic("markets"))
	payload := []byte(`{"state":"live"}`)
	err = pub.Publish(payload)
	assert.NoError(t, err)

	select {
	case msg := <-received:
		assert.Equal(t, payload, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("did not receive message in time")
	}
}

func TestPubSub_ContextCancellation(t *testing.T) {
	ch := make(chan []byte)
	ctx, cancel := context.WithCancel(t.Context())

	pub := New(WithChannel(ch), WithContext(ctx), WithTopic("markets"))

	cancel()

	err := pub.Publish([]byte("should fail"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPubSub_NonBlockingDropsWhenFull(t *testing.T) {
	ch := make(chan []byte, 1)
	pub := New(WithChannel(ch), WithContext(t.Context()), WithTopic("markets"), WithNonBlocking())

	assert.NoError(t, pub.Publish([]byte("first")))
	err := pub.Publish([]byte("second"))
	assert.ErrorIs(t, err, ErrChannelFull)
	assert.Equal(t, []byte("first"), <-ch)
}

func TestPubSub_SubscribeWithoutHandler(t *testing.T) {
	ch := make(chan []byte, 1)

	sub := New(WithChannel(ch), WithContext(t.Context()), WithLogger(discardLogger), WithTopic("markets"))
	err := sub.Subscribe()
	assert.ErrorIs(t, err, ErrInvalidPubSubConfig)
}

func TestPubSub_SubscribeInvalidConfig(t *testing.T) {
	sub := New(WithContext(t.Context()), WithLogger(discardLogger), WithTopic("markets"),
		WithHandler(func([]byte) error { return nil }))
	err := sub.Subscribe()
	assert.ErrorIs(t, err, ErrInvalidPubSubConfig)
}
