package usecase

import (
	"context"
	"fmt"
	"time"

	"healthcare-portal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// tokenStore keeps the set of live token ids in Redis. A token whose key is
// missing is treated as revoked by the auth middleware.
type tokenStore struct {
	redisClient *redis.Client
}

func accessTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", userID.String(), tokenID)
}

func refreshTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("refresh_token:%s:%s", userID.String(), tokenID)
}

func (s tokenStore) save(ctx context.Context, userID uuid.UUID, accessID string, accessTTL time.Duration, refreshID string, refreshTTL time.Duration) error {
	pipe := s.redisClient.TxPipeline()
	pipe.Set(ctx, accessTokenKey(userID, accessID), "valid", accessTTL)
	pipe.Set(ctx, refreshTokenKey(userID, refreshID), "valid", refreshTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s tokenStore) exists(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) (bool, error) {
	key := accessTokenKey(userID, tokenID)
	if tokenType == jwt.RefreshToken {
		key = refreshTokenKey(userID, tokenID)
	}
	n, err := s.redisClient.Exists(ctx, key).Result()
	return n > 0, err
}

func (s tokenStore) delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.redisClient.Del(ctx, keys...).Err()
}

func (s tokenStore) deleteMatching(ctx context.Context, pattern string) error {
	keys, err := s.redisClient.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}
	return s.delete(ctx, keys...)
}

// revokeAll drops every access and refresh token of the user.
func (s tokenStore) revokeAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.deleteMatching(ctx, fmt.Sprintf("access_token:%s:*", userID.String())); err != nil {
		return err
	}
	return s.deleteMatching(ctx, fmt.Sprintf("refresh_token:%s:*", userID.String()))
}
