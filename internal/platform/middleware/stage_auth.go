// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/portal/internal/platform/constants"
	"github.com/taibuivan/portal/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/portal/internal/platform/request"
	"github.com/taibuivan/portal/internal/session"
)

// SessionResolver looks up a live session by bearer token.
//
// Absence is reported as nil without error. The auth service implements it;
// the middleware never writes sessions.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*session.Session, error)
}

// IsReadOnlyMethod reports whether method carries no mutation intent.
func IsReadOnlyMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

/*
Authenticate attaches the session user to the context of mutating requests.

# Flow
 1. Read-only methods skip token resolution entirely.
 2. Extract "Authorization: Bearer <token>"; absent or malformed means no token.
 3. Resolve the token via [SessionResolver].
 4. If a session is found, call next with the user added to the context.
 5. Otherwise call next with the context unchanged.

It never short-circuits: handlers that need a user enforce it themselves, for
example through [RequireAuth]. Resolver failures are logged and treated as
"no user".
*/
func Authenticate[R any](resolver SessionResolver) Stage[R] {
	return StageFunc[R](func(ctx context.Context, request Request, next Next[R]) (R, error) {
		if IsReadOnlyMethod(request.Method) {
			return next(ctx)
		}

		token, ok := requestutil.ParseBearer(request.Header.Get(constants.HeaderAuthorization))
		if !ok {
			return next(ctx)
		}

		found, err := resolver.ResolveSession(ctx, token)
		if err != nil {
			ctxutil.GetLogger(ctx).WarnContext(ctx, "session_resolution_failed", slog.Any("error", err))
			return next(ctx)
		}
		if found == nil {
			return next(ctx)
		}

		ctx = ctxutil.WithAuthUser(ctx, found.User)
		ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", found.User.ID)))
		return next(ctx)
	})
}
