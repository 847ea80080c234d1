// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/portal/internal/platform/ctxutil"
)

// StatusCoder is implemented by results that carry an HTTP status.
// [Logging] uses it to pick the log level of the completion line.
type StatusCoder interface {
	StatusCode() int
}

/*
Logging records every request that passes through the chain.

# Flow
 1. Emit "request_started" with method and path.
 2. Attach a request-scoped logger to the context for downstream stages.
 3. Invoke next.
 4. Emit exactly one "request_finished" with the elapsed duration. This runs
    in a deferred block, so it fires after an error return and while a panic
    unwinds. The panic itself is left to propagate.

The inner result and error are returned unmodified.
*/
func Logging[R any](logger *slog.Logger) Stage[R] {
	return StageFunc[R](func(ctx context.Context, request Request, next Next[R]) (result R, err error) {
		startTime := time.Now()

		requestLogger := logger.With(
			slog.String("method", request.Method),
			slog.String("path", request.Path),
		)
		if rid := ctxutil.GetRequestID(ctx); rid != "" {
			requestLogger = requestLogger.With(slog.String("request_id", rid))
		}

		ctx = ctxutil.WithLogger(ctx, requestLogger)
		requestLogger.InfoContext(ctx, "request_started")

		completed := false
		defer func() {
			elapsed := time.Since(startTime)
			logLevel := slog.LevelInfo
			attrs := []any{
				slog.Duration("elapsed", elapsed),
				slog.Int64("latency_ms", elapsed.Milliseconds()),
			}

			if coder, ok := any(result).(StatusCoder); ok && completed {
				status := coder.StatusCode()
				attrs = append(attrs, slog.Int("status", status))
				if status >= 500 {
					logLevel = slog.LevelError
				} else if status >= 400 {
					logLevel = slog.LevelWarn
				}
			}

			switch {
			case !completed:
				logLevel = slog.LevelError
				attrs = append(attrs, slog.Bool("panicked", true))
			case err != nil:
				logLevel = slog.LevelError
				attrs = append(attrs, slog.Any("error", err))
			}

			requestLogger.Log(ctx, logLevel, "request_finished", attrs...)
		}()

		result, err = next(ctx)
		completed = true
		return result, err
	})
}
