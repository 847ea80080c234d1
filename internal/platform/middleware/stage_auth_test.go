// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/portal/internal/platform/ctxutil"
	"github.com/taibuivan/portal/internal/platform/middleware"
	"github.com/taibuivan/portal/internal/session"
)

type fakeResolver struct {
	sessions map[string]*session.Session
	err      error
	calls    int
}

func (f *fakeResolver) ResolveSession(_ context.Context, token string) (*session.Session, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[token], nil
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{sessions: map[string]*session.Session{
		"valid-token": {
			Token: "valid-token",
			User:  session.User{ID: "1", Email: "user@example.com", Name: "Demo User"},
		},
	}}
}

// runAuth pushes one request through Authenticate and returns the context the
// endpoint saw and whether it ran.
func runAuth(t *testing.T, resolver middleware.SessionResolver, method, authorization string) (context.Context, bool) {
	t.Helper()

	var seen context.Context
	ran := false

	endpoint := middleware.NewChain(middleware.Authenticate[string](resolver)).
		Then(func(ctx context.Context, request middleware.Request) (string, error) {
			seen = ctx
			ran = true
			return "ok", nil
		})

	header := http.Header{}
	if authorization != "" {
		header.Set("Authorization", authorization)
	}

	base := ctxutil.WithRequestID(context.Background(), "rid-42")
	_, err := endpoint(base, middleware.Request{Method: method, Path: "/api/v1/users/1", Header: header})
	require.NoError(t, err)

	return seen, ran
}

/*
TestAuthenticate_ReadOnlyBypass verifies that GET with a valid token leaves
the context unchanged and never consults the resolver.
*/
func TestAuthenticate_ReadOnlyBypass(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		t.Run(method, func(t *testing.T) {
			resolver := newFakeResolver()
			seen, ran := runAuth(t, resolver, method, "Bearer valid-token")

			assert.True(t, ran)
			assert.Nil(t, ctxutil.GetAuthUser(seen))
			assert.Equal(t, "rid-42", ctxutil.GetRequestID(seen))
			assert.Zero(t, resolver.calls)
		})
	}
}

/*
TestAuthenticate_AttachesUser verifies that mutating requests with a live
token get the session user while keeping earlier context values.
*/
func TestAuthenticate_AttachesUser(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			seen, ran := runAuth(t, newFakeResolver(), method, "Bearer valid-token")

			require.True(t, ran)
			user := ctxutil.GetAuthUser(seen)
			require.NotNil(t, user)
			assert.Equal(t, session.User{ID: "1", Email: "user@example.com", Name: "Demo User"}, *user)
			assert.Equal(t, "rid-42", ctxutil.GetRequestID(seen))
		})
	}
}

/*
TestAuthenticate_PassThrough verifies that missing, malformed, and unknown
tokens reach the handler without a user and without short-circuiting.
*/
func TestAuthenticate_PassThrough(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
		resolverCalls int
	}{
		{"missing_header", "", 0},
		{"wrong_scheme", "Basic dXNlcjpwYXNz", 0},
		{"empty_token", "Bearer ", 0},
		{"unknown_token", "Bearer forged-token", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := newFakeResolver()
			seen, ran := runAuth(t, resolver, http.MethodPost, tt.authorization)

			assert.True(t, ran)
			assert.Nil(t, ctxutil.GetAuthUser(seen))
			assert.Equal(t, "rid-42", ctxutil.GetRequestID(seen))
			assert.Equal(t, tt.resolverCalls, resolver.calls)
		})
	}
}

/*
TestAuthenticate_ResolverFailure verifies that a backend error degrades to
anonymous instead of failing the request.
*/
func TestAuthenticate_ResolverFailure(t *testing.T) {
	resolver := newFakeResolver()
	resolver.err = errors.New("redis down")

	seen, ran := runAuth(t, resolver, http.MethodPost, "Bearer valid-token")

	assert.True(t, ran)
	assert.Nil(t, ctxutil.GetAuthUser(seen))
}

/*
TestIsReadOnlyMethod covers the read-only method set.
*/
func TestIsReadOnlyMethod(t *testing.T) {
	assert.True(t, middleware.IsReadOnlyMethod(http.MethodGet))
	assert.True(t, middleware.IsReadOnlyMethod(http.MethodHead))
	assert.True(t, middleware.IsReadOnlyMethod(http.MethodOptions))
	assert.False(t, middleware.IsReadOnlyMethod(http.MethodPost))
	assert.False(t, middleware.IsReadOnlyMethod(http.MethodPut))
	assert.False(t, middleware.IsReadOnlyMethod(http.MethodDelete))
}
