// Package context carries per-request values from the HTTP layer into the use
// cases: the request id, the request logger and the authenticated caller.
package context

import (
	"context"
	"log/slog"

	"muthurwa/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// HeaderXRequestID carries the request id in both directions.
const HeaderXRequestID = "X-Request-Id"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	loggerKey
	callerKey
)

// WithRequest stores the request id along with a logger tagged with it.
func WithRequest(ctx context.Context, requestID string, base *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	return context.WithValue(ctx, loggerKey, base.With(slog.String("request_id", requestID)))
}

// RequestID returns the id of the request being served, or "" outside one.
func RequestID(c echo.Context) string {
	return RequestIDFrom(c.Request().Context())
}

// RequestIDFrom is RequestID for code that only holds the context.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)

	return id
}

// Logger returns the request logger, or fallback when ctx carries none.
func Logger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}

	return fallback
}

// WithCaller stores the authenticated caller. The request logger is tagged
// with the caller's identity and role so later lines name who acted.
func WithCaller(ctx context.Context, caller entity.Caller, fallback *slog.Logger) context.Context {
	logger := Logger(ctx, fallback).With(
		slog.String("identity_id", caller.IdentityID.String()),
		slog.String("role", string(caller.Role)),
	)
	ctx = context.WithValue(ctx, callerKey, caller)

	return context.WithValue(ctx, loggerKey, logger)
}

// CallerFrom returns the caller stored by WithCaller.
func CallerFrom(ctx context.Context) (entity.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(entity.Caller)

	return caller, ok
}
