// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package upstreamtest provides an in-process fake of the proxied REST API for tests.
*/
package upstreamtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/portal/internal/upstream"
)

// User mirrors an upstream user record, including fields the portal drops.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Post mirrors an upstream post record.
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Server is a fake upstream with a fixed dataset.
type Server struct {
	*httptest.Server

	Users []User
	Posts []Post

	// FailWith forces every response to the given status when non-zero.
	FailWith atomic.Int32
}

// New starts a fake upstream seeded with 3 users and 25 posts.
func New(t *testing.T) *Server {
	t.Helper()

	fake := &Server{
		Users: []User{
			{ID: 1, Name: "Leanne Graham", Username: "Bret", Email: "Sincere@april.biz"},
			{ID: 2, Name: "Ervin Howell", Username: "Antonette", Email: "Shanna@melissa.tv"},
			{ID: 3, Name: "Clementine Bauch", Username: "Samantha", Email: "Nathan@yesenia.net"},
		},
	}
	for i := 1; i <= 25; i++ {
		fake.Posts = append(fake.Posts, Post{
			ID:     i,
			UserID: (i-1)%3 + 1,
			Title:  "post " + strconv.Itoa(i),
			Body:   "body " + strconv.Itoa(i),
		})
	}

	fake.Server = httptest.NewServer(fake.routes())
	t.Cleanup(fake.Close)
	return fake
}

// Client returns an [upstream.Client] pointed at the fake.
func (fake *Server) Client(t *testing.T) *upstream.Client {
	t.Helper()
	client, err := upstream.NewClient(fake.URL, 2*time.Second)
	require.NoError(t, err)
	return client
}

func (fake *Server) routes() http.Handler {
	router := chi.NewRouter()

	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if status := fake.FailWith.Load(); status != 0 {
				http.Error(writer, http.StatusText(int(status)), int(status))
				return
			}
			next.ServeHTTP(writer, request)
		})
	})

	router.Get("/users", func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, http.StatusOK, fake.Users)
	})
	router.Post("/users", func(writer http.ResponseWriter, request *http.Request) {
		var in User
		_ = json.NewDecoder(request.Body).Decode(&in)
		in.ID = len(fake.Users) + 1
		writeJSON(writer, http.StatusCreated, in)
	})
	router.Get("/users/{id}", func(writer http.ResponseWriter, request *http.Request) {
		user, ok := fake.user(chi.URLParam(request, "id"))
		if !ok {
			writeJSON(writer, http.StatusNotFound, struct{}{})
			return
		}
		writeJSON(writer, http.StatusOK, user)
	})
	router.Put("/users/{id}", func(writer http.ResponseWriter, request *http.Request) {
		user, ok := fake.user(chi.URLParam(request, "id"))
		if !ok {
			writeJSON(writer, http.StatusNotFound, struct{}{})
			return
		}
		var patch struct {
			Name  *string `json:"name"`
			Email *string `json:"email"`
		}
		_ = json.NewDecoder(request.Body).Decode(&patch)
		if patch.Name != nil {
			user.Name = *patch.Name
		}
		if patch.Email != nil {
			user.Email = *patch.Email
		}
		writeJSON(writer, http.StatusOK, user)
	})
	router.Delete("/users/{id}", func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, http.StatusOK, struct{}{})
	})

	router.Get("/posts", func(writer http.ResponseWriter, request *http.Request) {
		query := request.URL.Query()
		posts := fake.Posts

		if raw := query.Get("userId"); raw != "" {
			userID, _ := strconv.Atoi(raw)
			filtered := []Post{}
			for _, post := range posts {
				if post.UserID == userID {
					filtered = append(filtered, post)
				}
			}
			posts = filtered
		}

		if rawPage, rawLimit := query.Get("_page"), query.Get("_limit"); rawPage != "" && rawLimit != "" {
			page, _ := strconv.Atoi(rawPage)
			limit, _ := strconv.Atoi(rawLimit)
			start := (page - 1) * limit
			if start < 0 || start >= len(posts) {
				posts = []Post{}
			} else {
				end := min(start+limit, len(posts))
				posts = posts[start:end]
			}
		}

		writeJSON(writer, http.StatusOK, posts)
	})
	router.Get("/posts/{id}", func(writer http.ResponseWriter, request *http.Request) {
		id, _ := strconv.Atoi(chi.URLParam(request, "id"))
		for _, post := range fake.Posts {
			if post.ID == id {
				writeJSON(writer, http.StatusOK, post)
				return
			}
		}
		writeJSON(writer, http.StatusNotFound, struct{}{})
	})

	return router
}

func (fake *Server) user(rawID string) (User, bool) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return User{}, false
	}
	for _, user := range fake.Users {
		if user.ID == id {
			return user, true
		}
	}
	return User{}, false
}

func writeJSON(writer http.ResponseWriter, status int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(payload)
}
