package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisTTL matches the backend's refresh-token lifetime. A session
// older than this cannot be refreshed, so there is no point keeping it.
const DefaultRedisTTL = 7 * 24 * time.Hour

// RedisSlot is a durable slot backed by a single Redis key. It lets several
// processes (for example CLI invocations on different hosts) share one
// remembered session.
type RedisSlot struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisSlot creates a slot storing the session under prefix+SessionKey.
func NewRedisSlot(client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) *RedisSlot {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisSlot{
		client: client,
		key:    prefix + SessionKey,
		ttl:    ttl,
		logger: logger,
	}
}

// DialRedis connects to Redis and verifies the connection with a ping.
func DialRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return client, nil
}

func (r *RedisSlot) Name() string { return "redis" }

// Key returns the Redis key holding the session.
func (r *RedisSlot) Key() string { return r.key }

func (r *RedisSlot) Load(ctx context.Context) (*StoredSession, error) {
	val, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, &StoreError{Operation: "load", Slot: r.Name(), Cause: err}
	}

	var s StoredSession
	if err := json.Unmarshal(val, &s); err != nil || s.Validate() != nil {
		// Same policy as the file slot: the next write or clear replaces it.
		r.logger.Warn("Ignoring unreadable session record",
			"event", "session_record_corrupt",
			"key", r.key,
		)
		return nil, nil
	}
	return &s, nil
}

func (r *RedisSlot) Save(ctx context.Context, s StoredSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return &StoreError{Operation: "save", Slot: r.Name(), Cause: err}
	}

	if err := r.client.Set(ctx, r.key, data, r.ttl).Err(); err != nil {
		return &StoreError{Operation: "save", Slot: r.Name(), Cause: err}
	}
	return nil
}

func (r *RedisSlot) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return &StoreError{Operation: "delete", Slot: r.Name(), Cause: err}
	}
	return nil
}

var _ Slot = (*RedisSlot)(nil)
