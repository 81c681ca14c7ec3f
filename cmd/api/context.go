package main

import (
	"context"
	"log/slog"
	"net/http"
)

type contextKey string

const requestIDContextKey = contextKey("request_id")

// contextWithRequestID stores the request id in ctx.
func contextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

// requestIDFrom returns the request id set by the requestID middleware, or "".
func requestIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(requestIDContextKey).(string)
	return id
}

// requestLogger returns app.logger tagged with the request id, or app.logger
// itself for requests that did not pass through the requestID middleware.
func (app *applicationDependencies) requestLogger(r *http.Request) *slog.Logger {
	if id := requestIDFrom(r); id != "" {
		return app.logger.With("request_id", id)
	}
	return app.logger
}
