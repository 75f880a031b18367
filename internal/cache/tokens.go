package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps per-user headhunter tokens in Redis. Access tokens expire
// with the TTL reported by the OAuth endpoint; refresh tokens live under a
// separate key with a fixed long TTL. Overwrites are unconditional, so the
// last exchange or refresh always wins.
type TokenStore struct {
	rdb *redis.Client
}

func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{rdb: rdb}
}

func (t *TokenStore) SetAccessToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	return t.rdb.Set(ctx, AccessTokenKey(userID), token, ttl).Err()
}

func (t *TokenStore) SetRefreshToken(ctx context.Context, userID, token string) error {
	return t.rdb.Set(ctx, RefreshTokenKey(userID), token, TTLRefreshToken).Err()
}

// AccessToken returns the stored token, or ok=false when it expired or was
// never set.
func (t *TokenStore) AccessToken(ctx context.Context, userID string) (string, bool, error) {
	token, err := t.rdb.Get(ctx, AccessTokenKey(userID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return token, true, nil
}

func (t *TokenStore) RefreshToken(ctx context.Context, userID string) (string, bool, error) {
	token, err := t.rdb.Get(ctx, RefreshTokenKey(userID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return token, true, nil
}
