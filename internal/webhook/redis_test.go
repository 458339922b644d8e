package webhook_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/shipit/internal/webhook"
)

type fakePublisher struct {
	channel string
	message any
	err     error
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message any) *redis.IntCmd {
	f.channel = channel
	f.message = message
	return redis.NewIntResult(1, f.err)
}

func TestRedisPublisher_Handle(t *testing.T) {
	pub := &fakePublisher{}
	p := webhook.NewRedisPublisher(pub, "shipit:events", nil)

	ev := webhook.NewEvent(webhook.EventUpdated, map[string]any{"status": "delivered"})
	require.NoError(t, p.Handle(context.Background(), ev))

	assert.Equal(t, "redis", p.Name())
	assert.Equal(t, "shipit:events", pub.channel)

	raw, ok := pub.message.([]byte)
	require.True(t, ok)
	var got webhook.Event
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, ev.ID, got.ID)
	assert.Equal(t, webhook.EventUpdated, got.Type)
	assert.Equal(t, "delivered", got.Data["status"])
}

func TestRedisPublisher_PublishError(t *testing.T) {
	boom := errors.New("connection reset")
	p := webhook.NewRedisPublisher(&fakePublisher{err: boom}, "shipit:events", nil)

	err := p.Handle(context.Background(), webhook.NewEvent(webhook.EventCreated, nil))
	assert.True(t, errors.Is(err, boom))
}

func TestNewRedisClient(t *testing.T) {
	client, err := webhook.NewRedisClient("redis://localhost:6379/2")
	require.NoError(t, err)
	defer client.Close()
	assert.Equal(t, "localhost:6379", client.Options().Addr)
	assert.Equal(t, 2, client.Options().DB)

	_, err = webhook.NewRedisClient("http://localhost")
	assert.Error(t, err)
}
