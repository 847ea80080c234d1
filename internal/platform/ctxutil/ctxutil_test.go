// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/portal/internal/platform/ctxutil"
	"github.com/taibuivan/portal/internal/session"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_AuthUser verifies that the user snapshot can be stored in context
without disturbing values attached earlier.
*/
func TestContext_AuthUser(t *testing.T) {
	ctx := ctxutil.WithRequestID(context.Background(), "rid-1")

	// 1. Initially should be nil
	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithAuthUser(ctx, session.User{ID: "1", Email: "user@example.com", Name: "Demo User"})
	retrieved := ctxutil.GetAuthUser(ctx)

	require.NotNil(t, retrieved)
	assert.Equal(t, "1", retrieved.ID)
	assert.Equal(t, "Demo User", retrieved.Name)

	// 3. Earlier values survive
	assert.Equal(t, "rid-1", ctxutil.GetRequestID(ctx))
}

/*
TestContext_AuthUser_Copy verifies that callers cannot mutate the stored snapshot.
*/
func TestContext_AuthUser_Copy(t *testing.T) {
	ctx := ctxutil.WithAuthUser(context.Background(), session.User{ID: "1", Name: "Demo User"})

	first := ctxutil.GetAuthUser(ctx)
	first.Name = "changed"

	assert.Equal(t, "Demo User", ctxutil.GetAuthUser(ctx).Name)
}
