package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements the Store interface using Redis. Snapshots go
// to a plain key with a TTL, curve updates to a capped stream.
type RedisStore struct {
	client *redis.Client
	opts   *StoreOptions
	ctx    context.Context
}

// NewRedisStore creates a new Redis store instance. The address is a
// URL of the form tcp://:password@host:port/db.
func NewRedisStore(addr string, options ...RedisOption) (*RedisStore, error) {
	opts := DefaultStoreOptions()

	u, err := url.Parse(addr)
	if err != nil {
		return nil, fmt.Errorf("can't parse url for redis: %w", err)
	}
	var passwd string
	if u.User != nil {
		passwd, _ = u.User.Password()
	}
	db := 0
	if 1 < len(u.Path) {
		db, err = strconv.Atoi(u.Path[1:])
		if err != nil {
			return nil, fmt.Errorf("can't convert redis db %q: %w", u.Path[1:], err)
		}
	}

	client := redis.NewClient(&redis.Options{
		Network:  u.Scheme,
		Addr:     u.Host,
		Password: passwd,
		DB:       db,
	})

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	store := &RedisStore{
		client: client,
		opts:   opts,
		ctx:    ctx,
	}

	// Apply options
	for _, option := range options {
		option(store)
	}

	return store, nil
}

// RedisOption is a function that configures Redis store options.
type RedisOption func(*RedisStore)

// WithRedisOptions sets store options.
func WithRedisOptions(opts *StoreOptions) RedisOption {
	return func(rs *RedisStore) {
		rs.opts = opts
	}
}

// WithContext sets the context for store operations.
func WithContext(ctx context.Context) RedisOption {
	return func(rs *RedisStore) {
		rs.ctx = ctx
	}
}

func (rs *RedisStore) SaveSnapshot(snapshot *MarketSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("market snapshot is nil")
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal market snapshot: %w", err)
	}

	return rs.client.Set(rs.ctx, snapshotBackupKey, data, rs.opts.DefaultTTL).Err()
}

func (rs *RedisStore) LoadSnapshot() (*MarketSnapshot, error) {
	data, err := rs.client.Get(rs.ctx, snapshotBackupKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // No backup found
		}
		return nil, fmt.Errorf("failed to get backup from Redis: %w", err)
	}

	var snapshot MarketSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal backup: %w", err)
	}

	return &snapshot, nil
}

func (rs *RedisStore) PublishCurveUpdate(update *CurveUpdate) error {
	if update == nil {
		return fmt.Errorf("curve update is nil")
	}

	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal curve update: %w", err)
	}

	return rs.client.XAdd(rs.ctx, &redis.XAddArgs{
		Stream: curveStreamKey,
		MaxLen: curveStreamMaxLen,
		Approx: true,
		Values: map[string]any{"update": data},
	}).Err()
}

func (rs *RedisStore) ReadCurveUpdates(sinceID string) ([]CurveUpdate, string, error) {
	if sinceID == "" {
		sinceID = "0"
	}

	streams, err := rs.client.XRead(rs.ctx, &redis.XReadArgs{
		Streams: []string{curveStreamKey, sinceID},
		Block:   rs.opts.ReadBlock,
	}).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, sinceID, nil // Nothing pending
		}
		return nil, sinceID, fmt.Errorf("failed to read curve stream: %w", err)
	}

	lastID := sinceID
	var updates []CurveUpdate
	for _, stream := range streams {
		for _, msg := range stream.Messages {
			raw, ok := msg.Values["update"].(string)
			if !ok {
				continue
			}
			var u CurveUpdate
			if err := json.Unmarshal([]byte(raw), &u); err != nil {
				return nil, lastID, fmt.Errorf("failed to unmarshal curve update %s: %w", msg.ID, err)
			}
			updates = append(updates, u)
			lastID = msg.ID
		}
	}
	return updates, lastID, nil
}

func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
