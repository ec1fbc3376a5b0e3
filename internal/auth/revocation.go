package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrTokenRevoked = errors.New("token revoked")

// Revoker keeps a denylist of token ids in Redis until the tokens expire.
// A Revoker without a client accepts every token.
type Revoker struct {
	client *redis.Client
}

func NewRevoker(client *redis.Client) *Revoker {
	return &Revoker{client: client}
}

func (r *Revoker) Enabled() bool {
	return r != nil && r.client != nil
}

func (r *Revoker) Revoke(ctx context.Context, claims *Claims) error {
	if !r.Enabled() || claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKey(claims.ID), "1", ttl).Err()
}

func (r *Revoker) Check(ctx context.Context, claims *Claims) error {
	if !r.Enabled() || claims == nil || claims.ID == "" {
		return nil
	}
	n, err := r.client.Exists(ctx, revokedKey(claims.ID)).Result()
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrTokenRevoked
	}
	return nil
}

func revokedKey(tokenID string) string {
	return "schoolbook:revoked:" + tokenID
}
