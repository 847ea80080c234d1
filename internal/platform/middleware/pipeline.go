// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"

	"github.com/taibuivan/portal/internal/platform/respond"
)

// Outcome is the result type of chains mounted on the HTTP server.
type Outcome struct {
	Status int
}

// StatusCode implements [StatusCoder].
func (o Outcome) StatusCode() int { return o.Status }

type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (recorder *statusRecorder) WriteHeader(code int) {
	if !recorder.wrote {
		recorder.status = code
		recorder.wrote = true
	}
	recorder.ResponseWriter.WriteHeader(code)
}

func (recorder *statusRecorder) Write(body []byte) (int, error) {
	recorder.wrote = true
	return recorder.ResponseWriter.Write(body)
}

// Unwrap lets [http.ResponseController] reach the underlying writer.
func (recorder *statusRecorder) Unwrap() http.ResponseWriter {
	return recorder.ResponseWriter
}

/*
Pipeline mounts a stage chain as standard router middleware.

The chain's endpoint serves the downstream handler with the context built by
the stages and reports the recorded status. A stage that short-circuits with
an error before anything was written gets it rendered through [respond.Error].
*/
func Pipeline(chain *Chain[Outcome]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if chain.Len() == 0 {
			return next
		}

		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			endpoint := chain.Then(func(ctx context.Context, _ Request) (Outcome, error) {
				next.ServeHTTP(recorder, request.WithContext(ctx))
				return Outcome{Status: recorder.status}, nil
			})

			_, err := endpoint(request.Context(), Request{
				Method: request.Method,
				Path:   request.URL.Path,
				Header: request.Header,
			})

			if err != nil && !recorder.wrote {
				respond.Error(recorder, request, err)
			}
		})
	}
}
