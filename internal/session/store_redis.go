// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/portal/internal/platform/constants"
)

// RedisStore implements [Store] using Redis.
//
// Each session is a JSON value under [constants.RedisPrefixSession] whose
// Redis TTL matches the session expiry, so expired sessions disappear
// without a cleanup worker.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (store *RedisStore) key(token string) string {
	return constants.RedisPrefixSession + token
}

/*
Put stores the session with a TTL derived from its expiry.

Description: A session without expiry is stored without TTL. A session that
is already expired is removed instead of written.

Parameters:
  - ctx: context.Context
  - token: string
  - session: Session

Returns:
  - error: Encoding or connectivity errors
*/
func (store *RedisStore) Put(ctx context.Context, token string, session Session) error {
	var ttl time.Duration
	if !session.ExpiresAt.IsZero() {
		ttl = time.Until(session.ExpiresAt)
		if ttl <= 0 {
			return store.Delete(ctx, token)
		}
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	if err := store.client.Set(ctx, store.key(token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the session stored under token.

Description: Returns nil without error when the key is absent or expired.

Parameters:
  - ctx: context.Context
  - token: string

Returns:
  - *Session: Decoded session or nil
  - error: Decoding or connectivity errors
*/
func (store *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	raw, err := store.client.Get(ctx, store.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}

	// Guard against clock skew between this process and the Redis server.
	if session.ExpiredAt(time.Now()) {
		return nil, nil
	}

	return &session, nil
}

// Delete removes the session key. Missing keys are not an error.
func (store *RedisStore) Delete(ctx context.Context, token string) error {
	if err := store.client.Del(ctx, store.key(token)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}
