package redisstore

// Package redisstore provides a Redis-backed credential store shared by
// every client pointed at the same Redis. Writes are published on a pub/sub
// channel so other clients converge the way browser tabs do on storage
// events. Last writer wins; no stronger coordination is provided.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/openshelf/biblio-admin/internal/ports"
)

const defaultPrefix = "credentials:"

// Store is a Redis-based credential store.
type Store struct {
	client  redis.UniversalClient
	prefix  string
	channel string
	// origin identifies this client instance in published events, so its
	// own watcher can skip changes it made itself.
	origin string
}

var _ ports.CredentialStore = (*Store)(nil)

// event is the wire form of a credential change on the pub/sub channel.
type event struct {
	Key     string `json:"key"`
	Value   string `json:"value,omitempty"`
	Removed bool   `json:"removed,omitempty"`
	Origin  string `json:"origin"`
}

// New creates a Redis credential store with the default key prefix.
func New(client redis.UniversalClient) *Store {
	return NewWithPrefix(client, defaultPrefix)
}

// NewWithPrefix creates a Redis credential store with a custom key prefix.
// The change channel is derived from the prefix, so stores with different
// prefixes do not see each other's events.
func NewWithPrefix(client redis.UniversalClient, prefix string) *Store {
	return &Store{
		client:  client,
		prefix:  prefix,
		channel: prefix + "events",
		origin:  uuid.NewString(),
	}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errors.New("redisstore: key cannot be empty")
	}

	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("redisstore: key cannot be empty")
	}

	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return s.publish(ctx, event{Key: key, Value: value, Origin: s.origin})
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil // Nothing to remove
	}

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return s.publish(ctx, event{Key: key, Removed: true, Origin: s.origin})
}

func (s *Store) publish(ctx context.Context, ev event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish change event: %w", err)
	}
	return nil
}

// Watch subscribes to the store's change channel. Events published by this
// store instance are filtered out by origin; everything else is forwarded.
func (s *Store) Watch(ctx context.Context) (<-chan ports.Change, func(), error) {
	pubsub := s.client.Subscribe(ctx, s.channel)

	// Force the subscription to be established before returning, so a
	// caller that writes from another client right after Watch does not
	// race the subscribe.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, fmt.Errorf("subscribe to change channel: %w", err)
	}

	ch := make(chan ports.Change, 8)
	var once sync.Once
	stop := func() {
		once.Do(func() { pubsub.Close() })
	}

	go func() {
		defer close(ch)
		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				stop()
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				if ev.Origin == s.origin {
					continue
				}
				change := ports.Change{Key: ev.Key, Value: ev.Value, Removed: ev.Removed, Origin: ev.Origin}
				select {
				case ch <- change:
				case <-ctx.Done():
					stop()
					return
				}
			}
		}
	}()

	return ch, stop, nil
}
