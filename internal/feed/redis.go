package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Dial connects to Redis. An empty URL means Redis is not configured and
// returns nil, nil.
func Dial(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// RedisBroker fans records out to every replica over Redis pub/sub. Publish
// goes to Redis only; Run relays what arrives back into the local hub, so a
// replica also sees its own records exactly once.
type RedisBroker struct {
	client *redis.Client
	prefix string
	hub    *Hub
	log    *zerolog.Logger
}

func NewRedisBroker(client *redis.Client, prefix string, hub *Hub, log *zerolog.Logger) *RedisBroker {
	if prefix == "" {
		prefix = "memorywall:feed"
	}
	return &RedisBroker{client: client, prefix: prefix, hub: hub, log: log}
}

func (b *RedisBroker) channel(collection string) string {
	return b.prefix + ":" + collection
}

func (b *RedisBroker) Publish(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal feed record: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel(rec.Collection), payload).Err(); err != nil {
		return fmt.Errorf("publish feed record: %w", err)
	}
	return nil
}

// Run blocks relaying Redis messages into the hub until ctx is done.
func (b *RedisBroker) Run(ctx context.Context) error {
	ps := b.client.Subscribe(ctx, b.channel(CollectionSubmissions), b.channel(CollectionEvents))
	defer ps.Close()

	if _, err := ps.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to feed channels: %w", err)
	}
	b.log.Info().Str("prefix", b.prefix).Msg("Redis feed relay started")

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			b.log.Info().Msg("Redis feed relay stopped")
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.dispatch(ctx, msg.Payload)
		}
	}
}

func (b *RedisBroker) dispatch(ctx context.Context, payload string) {
	var rec Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		b.log.Warn().Err(err).Msg("dropping malformed feed record")
		return
	}
	_ = b.hub.Publish(ctx, rec)
}
