// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package posts_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/portal/internal/platform/apperr"
	"github.com/taibuivan/portal/internal/posts"
	"github.com/taibuivan/portal/internal/upstream/upstreamtest"
	"github.com/taibuivan/portal/pkg/pagination"
)

func newService(t *testing.T) (*posts.Service, *upstreamtest.Server) {
	t.Helper()
	fake := upstreamtest.New(t)
	return posts.NewService(fake.Client(t)), fake
}

func ids(list []posts.Post) []int {
	out := make([]int, 0, len(list))
	for _, post := range list {
		out = append(out, post.ID)
	}
	return out
}

func TestService_First(t *testing.T) {
	service, _ := newService(t)

	list, err := service.First(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids(list))
}

func TestService_Page(t *testing.T) {
	service, _ := newService(t)

	list, err := service.Page(context.Background(), pagination.Params{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []int{21, 22, 23, 24, 25}, ids(list))

	list, err = service.Page(context.Background(), pagination.Params{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_ByUser(t *testing.T) {
	service, _ := newService(t)

	list, err := service.ByUser(context.Background(), "2")
	require.NoError(t, err)
	require.NotEmpty(t, list)
	for _, post := range list {
		assert.Equal(t, 2, post.UserID)
	}
}

func TestService_Get(t *testing.T) {
	service, fake := newService(t)

	post, err := service.Get(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "post 7", post.Title)

	_, err = service.Get(context.Background(), "999")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	fake.FailWith.Store(http.StatusServiceUnavailable)
	_, err = service.Get(context.Background(), "7")
	assert.True(t, apperr.HasCode(err, apperr.CodeBadGateway))
}

func TestHandler_List(t *testing.T) {
	service, _ := newService(t)
	routes := posts.NewHandler(service).Routes()

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"first_ten", "", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{"paged", "?page=2&limit=5", []int{6, 7, 8, 9, 10}},
		{"by_user", "?userId=3", []int{3, 6, 9, 12, 15, 18, 21, 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			routes.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))
			require.Equal(t, http.StatusOK, recorder.Code)

			var body struct {
				Data []posts.Post `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.want, ids(body.Data))
		})
	}
}

func TestHandler_GetNotFound(t *testing.T) {
	service, _ := newService(t)
	routes := posts.NewHandler(service).Routes()

	recorder := httptest.NewRecorder()
	routes.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/404", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Post not found")
}
