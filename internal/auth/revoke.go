package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoker is the sign-out denylist. Tokens are stateless, so sign-out
// records the token id in Redis until the token would have expired
// anyway; the middleware consults the list on every request.
type Revoker struct {
	client *redis.Client
}

func NewRevoker(redisURL string) (*Revoker, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Revoker{client: redis.NewClient(opts)}, nil
}

func revokeKey(tokenID string) string {
	return "revoked:" + tokenID
}

// Revoke denylists a token id for ttl, which callers derive from the
// token's remaining lifetime. Entries expire with the token, so the
// list never grows past the set of live sessions.
func (r *Revoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokeKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *Revoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, err := r.client.Get(ctx, revokeKey(tokenID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return true, nil
}

func (r *Revoker) Close() error {
	return r.client.Close()
}
