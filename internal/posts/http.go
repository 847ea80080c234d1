// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package posts

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/portal/internal/platform/request"
	"github.com/taibuivan/portal/internal/platform/respond"
	"github.com/taibuivan/portal/pkg/pagination"
)

// Handler implements the post HTTP endpoints.
type Handler struct {
	postService *Service
}

// NewHandler constructs a new posts [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{postService: service}
}

// Routes returns a [chi.Router] configured with the post endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{postID}", handler.get)

	return router
}

/*
GET /api/v1/posts.

Request:
  - userId: string (optional, all posts by that user)
  - page, limit: int (optional, one upstream page)

Response:
  - 200: []Post (first 10 when no parameter is given)
  - 502: Upstream failure
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	var (
		list []Post
		err  error
	)

	switch {
	case query.Get("userId") != "":
		list, err = handler.postService.ByUser(request.Context(), query.Get("userId"))
	case query.Has("page") || query.Has("limit"):
		list, err = handler.postService.Page(request.Context(), pagination.FromRequest(request))
	default:
		list, err = handler.postService.First(request.Context())
	}

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, list)
}

/*
GET /api/v1/posts/{postID}.

Response:
  - 200: Post
  - 404: Post not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.postService.Get(request.Context(), requestutil.Param(request, "postID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}
