// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/portal/internal/platform/constants"
	"github.com/taibuivan/portal/internal/platform/ctxutil"
	"github.com/taibuivan/portal/internal/platform/validate"
	"github.com/taibuivan/portal/internal/session"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
DecodeOptionalJSON is [DecodeJSON] for endpoints whose body may be empty.
An empty body leaves target untouched.
*/
func DecodeOptionalJSON(request *http.Request, target interface{}) error {
	if request.Body == nil || request.Body == http.NoBody {
		return nil
	}
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ParseBearer extracts the token from an Authorization header value of the form
"Bearer <token>". The scheme is matched case-insensitively.

Returns:
  - string: The token
  - bool: false when the header is empty or malformed
*/
func ParseBearer(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, constants.BearerScheme) {
		return "", false
	}
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

/*
BearerToken extracts the bearer token from the request's Authorization header.
*/
func BearerToken(request *http.Request) (string, bool) {
	return ParseBearer(request.Header.Get(constants.HeaderAuthorization))
}

/*
User extracts the authenticated user from the request context.

Returns nil if the request is not authenticated.
*/
func User(request *http.Request) *session.User {
	return ctxutil.GetAuthUser(request.Context())
}

