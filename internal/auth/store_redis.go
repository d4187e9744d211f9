// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nvtphong/fabula/internal/platform/apperr"
	"github.com/nvtphong/fabula/internal/platform/constants"
	"github.com/nvtphong/fabula/internal/platform/sec"
)

// RedisSessionRepository implements SessionRepository using Redis.
//
// Keys map the SHA-256 hash of the refresh token to the owning user id;
// Redis TTL handles expiry, so a session that outlives its window simply
// stops resolving. Revocation is a key delete.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository creates a Redis-backed SessionRepository.
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(refreshToken string) string {
	return constants.RedisPrefixSession + sec.HashToken(refreshToken)
}

func (repository *RedisSessionRepository) Save(context context.Context, refreshToken, userID string, ttl time.Duration) error {

	if err := repository.client.Set(context, sessionKey(refreshToken), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_save_failed: %w", err)
	}

	return nil
}

/*
Resolve returns the user id owning a refresh token.

Description: Returns apperr.Unauthorized if the token is absent, which covers
both revocation and TTL expiry.
*/
func (repository *RedisSessionRepository) Resolve(context context.Context, refreshToken string) (string, error) {

	userID, err := repository.client.Get(context, sessionKey(refreshToken)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.Unauthorized("Invalid or expired refresh token")
		}
		return "", fmt.Errorf("redis_session_resolve_failed: %w", err)
	}

	return userID, nil
}

func (repository *RedisSessionRepository) Revoke(context context.Context, refreshToken string) error {

	if err := repository.client.Del(context, sessionKey(refreshToken)).Err(); err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}

	return nil
}
