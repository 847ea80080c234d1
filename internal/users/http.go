// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/portal/internal/platform/ctxutil"
	"github.com/taibuivan/portal/internal/platform/middleware"
	requestutil "github.com/taibuivan/portal/internal/platform/request"
	"github.com/taibuivan/portal/internal/platform/respond"
	"github.com/taibuivan/portal/pkg/pagination"
)

// Handler implements the user directory HTTP endpoints.
type Handler struct {
	userService *Service
}

// NewHandler constructs a new users [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{userService: service}
}

// Routes returns a [chi.Router] configured with the user endpoints.
//
// PUT requires an authenticated user attached by the request pipeline.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	router.Route("/{userID}", func(r chi.Router) {
		r.Get("/", handler.get)
		r.With(middleware.RequireAuth).Put("/", handler.update)
		r.Delete("/", handler.remove)
	})

	return router
}

/*
GET /api/v1/users.

Request:
  - filter: string (optional, matches name or email)
  - page, limit: int (optional)

Response:
  - 200: []User with pagination meta
  - 502: Upstream failure
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	all, err := handler.userService.List(request.Context(), request.URL.Query().Get("filter"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	respond.Paginated(writer, pagination.Slice(all, params), pagination.NewMeta(params.Page, params.Limit, len(all)))
}

/*
GET /api/v1/users/{userID}.

Response:
  - 200: User
  - 404: User not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.userService.Get(request.Context(), requestutil.Param(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
POST /api/v1/users.

Request:
  - body: CreateInput

Response:
  - 201: User
  - 400: Invalid JSON or validation failure
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.userService.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
PUT /api/v1/users/{userID}.

Request:
  - body: UpdateInput (partial)

Response:
  - 200: User
  - 400: Invalid JSON or validation failure
  - 401: No authenticated user
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	// RequireAuth guards this route, so the actor is always present.
	actor := requestutil.User(request)

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID := requestutil.Param(request, "userID")
	ctxutil.GetLogger(request.Context()).InfoContext(request.Context(), "user_update_requested",
		slog.String("target_user_id", userID),
		slog.String("actor_id", actor.ID),
	)

	user, err := handler.userService.Update(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// remove handles DELETE /api/v1/users/{userID}.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	ack, err := handler.userService.Delete(request.Context(), requestutil.Param(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ack)
}
