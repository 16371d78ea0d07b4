package userprofile

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis-backed profile store. Load it with
// pkg/config to source the values from the environment.
type RedisConfig struct {
	// ConnectionURL in the format "redis://:password@localhost:6379/0".
	ConnectionURL  string        `env:"EXPKIT_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"EXPKIT_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"EXPKIT_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"EXPKIT_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	// KeyPrefix namespaces profile keys; the user id is appended.
	KeyPrefix string `env:"EXPKIT_REDIS_KEY_PREFIX" envDefault:"expkit:profile:"`
	// TTL expires idle profiles; zero keeps them forever.
	TTL time.Duration `env:"EXPKIT_PROFILE_TTL" envDefault:"0"`
}

var (
	// ErrInvalidRedisURL is returned when the connection URL cannot be parsed.
	ErrInvalidRedisURL = errors.New("failed to parse redis connection string")

	// ErrRedisNotReady is returned when the server does not answer a ping
	// within the configured retry budget.
	ErrRedisNotReady = errors.New("redis did not become ready within the given time period")
)

// RedisStore persists profiles as JSON values in Redis, one key per user.
// Sticky bucketing then survives process restarts and is shared across SDK
// instances pointed at the same server.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix overrides the key namespace for profile records.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.keyPrefix = prefix }
}

// WithTTL expires profiles after the given idle duration; zero disables
// expiry.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) { s.ttl = ttl }
}

// NewRedisStore wraps an existing client. The caller keeps ownership of the
// client's lifecycle.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	store := &RedisStore{
		client:    client,
		keyPrefix: "expkit:profile:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// ConnectRedisStore dials Redis per the config, retrying until the server
// answers a ping or the retry budget is exhausted, and returns a store over
// the new client.
func ConnectRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidRedisURL, err)
	}

	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return NewRedisStore(client, WithKeyPrefix(cfg.KeyPrefix), WithTTL(cfg.TTL)), nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, ErrRedisNotReady
}

// Key returns the Redis key holding the user's profile.
func (s *RedisStore) Key(userID string) string {
	return s.keyPrefix + userID
}

// Lookup fetches and decodes the user's profile; a missing key is a miss,
// not an error.
func (s *RedisStore) Lookup(ctx context.Context, userID string) (*Profile, error) {
	data, err := s.client.Get(ctx, s.Key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save encodes and stores the profile under the user's key.
func (s *RedisStore) Save(ctx context.Context, profile *Profile) error {
	if profile == nil {
		return ErrNilProfile
	}
	if profile.UserID == "" {
		return ErrEmptyUserID
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.Key(profile.UserID), data, s.ttl).Err()
}
