package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request correlation ID in both directions.
const RequestIDHeader = "X-Request-Id"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// RequestIDKey is the context key for the request correlation ID.
const RequestIDKey contextKey = "request_id"

// GetRequestID extracts the request ID from the context.
// Returns empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, request ID, duration, and any error codes/messages.
// The request ID is taken from the X-Request-Id header, or generated when
// absent, and echoed back on the response.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			requestID := req.Header().Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			ctx = context.WithValue(ctx, RequestIDKey, requestID)

			resp, err := next(ctx, req)

			duration := time.Since(start).Milliseconds()
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					connectErr.Meta().Set(RequestIDHeader, requestID)
					slog.Warn("RPC error",
						"procedure", procedure,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"request_id", requestID,
						"duration_ms", duration,
					)
				} else {
					slog.Error("RPC error",
						"procedure", procedure,
						"error", err,
						"request_id", requestID,
						"duration_ms", duration,
					)
				}
			} else {
				resp.Header().Set(RequestIDHeader, requestID)
				slog.Info("RPC ok",
					"procedure", procedure,
					"request_id", requestID,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}
