// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/portal/internal/session"
)

func newRedisStore(t *testing.T) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return session.NewRedisStore(client), server
}

/*
TestRedisStore_Lifecycle covers put, get, and idempotent delete.
*/
func TestRedisStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	require.NoError(t, store.Put(ctx, "token-1", demoSession("token-1")))

	got, err := store.Get(ctx, "token-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Demo User", got.User.Name)

	require.NoError(t, store.Delete(ctx, "token-1"))
	require.NoError(t, store.Delete(ctx, "token-1"))

	got, err = store.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

/*
TestRedisStore_GetAbsent verifies that unknown and empty tokens are absent, not errors.
*/
func TestRedisStore_GetAbsent(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	for _, token := range []string{"", "missing"} {
		got, err := store.Get(ctx, token)
		assert.NoError(t, err)
		assert.Nil(t, got)
	}
}

/*
TestRedisStore_TTL verifies that the key TTL follows the session expiry.
*/
func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	store, server := newRedisStore(t)

	live := demoSession("ttl")
	live.ExpiresAt = time.Now().Add(time.Hour)
	require.NoError(t, store.Put(ctx, "ttl", live))

	assert.True(t, server.Exists("auth:session:ttl"))
	assert.Greater(t, server.TTL("auth:session:ttl"), 59*time.Minute)

	server.FastForward(2 * time.Hour)

	got, err := store.Get(ctx, "ttl")
	require.NoError(t, err)
	assert.Nil(t, got)
}

/*
TestRedisStore_PutExpired verifies that an already expired session is not written.
*/
func TestRedisStore_PutExpired(t *testing.T) {
	ctx := context.Background()
	store, server := newRedisStore(t)

	expired := demoSession("old")
	expired.ExpiresAt = time.Now().Add(-time.Second)
	require.NoError(t, store.Put(ctx, "old", expired))

	assert.False(t, server.Exists("auth:session:old"))
}

/*
TestRedisStore_BackendDown verifies that transport errors are surfaced.
*/
func TestRedisStore_BackendDown(t *testing.T) {
	ctx := context.Background()
	store, server := newRedisStore(t)
	server.Close()

	_, err := store.Get(ctx, "token")
	assert.Error(t, err)
	assert.Error(t, store.Put(ctx, "token", demoSession("token")))
}
