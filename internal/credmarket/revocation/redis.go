package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "credmarket:revoked:"

// Redis stores each revoked jti as a key whose TTL matches the token's
// remaining lifetime, so the list prunes itself.
type Redis struct {
	client redis.UniversalClient
	Now    func() time.Time
}

func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client, Now: time.Now}
}

// DialRedis parses a redis:// URL and pings the server.
func DialRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("revocation: parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("revocation: redis ping: %w", err)
	}
	return NewRedis(client), nil
}

func (r *Redis) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return ErrEmptyJTI
	}

	ttl := expiresAt.Sub(r.Now())
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, keyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revocation: persist %s: %w", jti, err)
	}
	return nil
}

func (r *Redis) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := r.client.Get(ctx, keyPrefix+jti).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("revocation: lookup %s: %w", jti, err)
	}
	return true, nil
}

// Ping is used by the readiness probe.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
