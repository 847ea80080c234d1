// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/portal/internal/platform/request"
	"github.com/taibuivan/portal/internal/platform/respond"
	"github.com/taibuivan/portal/internal/session"
)

// Handler implements the authentication HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /login  : Verifies credentials and issues a session token.
//   - POST /me     : Resolves the user bound to a token.
//   - POST /logout : Destroys a session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/me", handler.me)
	router.Post("/logout", handler.logout)

	return router
}

// # Payloads

// tokenRequest carries a session token in the body. The bearer header is
// used when the body token is empty.
type tokenRequest struct {
	Token string `json:"token"`
}

// loginResponse is returned by a successful login.
type loginResponse struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

// # Handlers

// login handles POST /api/v1/auth/login requests.
//
// # Returns
//   - 200 OK with the token and user snapshot.
//   - 400 Bad Request for malformed input.
//   - 401 Unauthorized for invalid credentials.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input Credentials
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	issued, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, loginResponse{Token: issued.Token, User: issued.User})
}

// me handles POST /api/v1/auth/me requests.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	token, err := sessionToken(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.CurrentUser(request.Context(), token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// logout handles POST /api/v1/auth/logout requests.
//
// An unknown or missing token still answers {"ok": true}.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	token, err := sessionToken(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ack, err := handler.authService.Logout(request.Context(), token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ack)
}

// sessionToken reads the token from the optional body, then the bearer header.
func sessionToken(request *http.Request) (string, error) {
	var input tokenRequest
	if err := requestutil.DecodeOptionalJSON(request, &input); err != nil {
		return "", err
	}

	if input.Token != "" {
		return input.Token, nil
	}

	token, _ := requestutil.BearerToken(request)
	return token, nil
}
