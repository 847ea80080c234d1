// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/portal/internal/api"
	"github.com/taibuivan/portal/internal/auth"
	"github.com/taibuivan/portal/internal/platform/config"
	"github.com/taibuivan/portal/internal/posts"
	"github.com/taibuivan/portal/internal/session"
	"github.com/taibuivan/portal/internal/upstream/upstreamtest"
	"github.com/taibuivan/portal/internal/users"
)

type harness struct {
	handler http.Handler
	logs    *bytes.Buffer
	store   *session.MemoryStore
}

func newHarness(t *testing.T, deps api.HealthDependencies) *harness {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store := session.NewMemoryStore()
	verifier, err := auth.NewStaticVerifier(bcrypt.MinCost, auth.Account{
		ID: "1", Email: "user@example.com", Name: "Demo User", Password: "password",
	})
	require.NoError(t, err)
	authService := auth.NewService(store, verifier, auth.DefaultSessionTTL)

	fake := upstreamtest.New(t)
	client := fake.Client(t)

	liveness, readiness := api.NewHealthHandlers(deps, logger)
	server := api.NewServer(ctx, &config.Config{ServerPort: "0", Environment: "development"}, logger, authService, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Users:     users.NewHandler(users.NewService(client)),
		Posts:     posts.NewHandler(posts.NewService(client)),
	})

	return &harness{handler: server.Handler(), logs: logs, store: store}
}

func (h *harness) do(t *testing.T, method, path, body, token string) (int, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	h.handler.ServeHTTP(recorder, request)

	decoded := map[string]json.RawMessage{}
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder.Code, decoded
}

func (h *harness) login(t *testing.T) string {
	t.Helper()

	status, body := h.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"user@example.com","password":"password"}`, "")
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body["data"], &data))
	return data.Token
}

func TestServer_SessionFlow(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})

	token := h.login(t)
	assert.Equal(t, 1, h.store.Len())

	// A mutating request with the token reaches the handler with a user attached.
	status, body := h.do(t, http.MethodPut, "/api/v1/users/1", `{"name":"Renamed"}`, token)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":1,"name":"Renamed","email":"Sincere@april.biz"}`, string(body["data"]))

	// Without the token the same request is refused by the handler.
	status, body = h.do(t, http.MethodPut, "/api/v1/users/1", `{"name":"Renamed"}`, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `"UNAUTHORIZED"`, string(body["code"]))

	status, body = h.do(t, http.MethodPost, "/api/v1/auth/me", "", token)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":"1","email":"user@example.com","name":"Demo User"}`, string(body["data"]))

	status, _ = h.do(t, http.MethodPost, "/api/v1/auth/logout", `{"token":"`+token+`"}`, "")
	require.Equal(t, http.StatusOK, status)
	assert.Zero(t, h.store.Len())

	status, _ = h.do(t, http.MethodPut, "/api/v1/users/1", `{"name":"Renamed"}`, token)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestServer_ReadOnlyRequestsBypassSessionLookup(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})

	status, body := h.do(t, http.MethodGet, "/api/v1/posts", "", "bogus-token")
	require.Equal(t, http.StatusOK, status)

	var list []posts.Post
	require.NoError(t, json.Unmarshal(body["data"], &list))
	assert.Len(t, list, posts.FirstPageSize)

	status, _ = h.do(t, http.MethodGet, "/api/v1/posts/9999", "", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestServer_LogsEveryRequestOnce(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})

	h.do(t, http.MethodGet, "/health", "", "")
	h.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"user@example.com","password":"wrong-pass"}`, "")

	var started, finished int
	var statuses []float64
	for _, line := range bytes.Split(bytes.TrimSpace(h.logs.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		switch entry["msg"] {
		case "request_started":
			started++
			assert.NotEmpty(t, entry["request_id"])
		case "request_finished":
			finished++
			statuses = append(statuses, entry["status"].(float64))
		}
	}

	assert.Equal(t, 2, started)
	assert.Equal(t, 2, finished)
	assert.Equal(t, []float64{http.StatusOK, http.StatusUnauthorized}, statuses)
}

func TestServer_Readiness(t *testing.T) {
	healthy := newHarness(t, api.HealthDependencies{
		CheckCache: func(context.Context) error { return nil },
	})
	status, body := healthy.do(t, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body["data"]), `"ready"`)

	degraded := newHarness(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return errors.New("connection refused") },
	})
	status, body = degraded.do(t, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, string(body["data"]), `"degraded"`)
	assert.Contains(t, string(body["data"]), "postgres")
}
