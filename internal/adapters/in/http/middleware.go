package http

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/metric"
	"checkout/internal/pkg/sl"
	"checkout/internal/pkg/tracing"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderSessionID = "X-Session-ID"
	HeaderActorRole = "X-Actor-Role"

	sessionKey = "session"
)

// Session reads the caller identity asserted by the upstream auth service.
// Requests without identity get a zero session, which every use case that
// needs one rejects.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, err := sessionFromHeaders(c)
			if err != nil {
				return err
			}
			c.Set(sessionKey, s)
			return next(c)
		}
	}
}

func sessionFromHeaders(c echo.Context) (kernel.Session, error) {
	header := c.Request().Header
	rawUser := strings.TrimSpace(header.Get(HeaderUserID))
	sessionID := strings.TrimSpace(header.Get(HeaderSessionID))

	if rawUser == "" {
		if sessionID == "" {
			return kernel.Session{}, nil
		}
		return kernel.NewAnonymousSession(sessionID)
	}

	userID, err := kernel.UUIDFromString(rawUser)
	if err != nil {
		return kernel.Session{}, errs.NewValueIsInvalidErrorWithCause(HeaderUserID, err)
	}
	role := kernel.RoleCustomer
	if strings.EqualFold(header.Get(HeaderActorRole), "admin") {
		role = kernel.RoleAdmin
	}
	return kernel.NewUserSession(userID, sessionID, role)
}

func session(c echo.Context) kernel.Session {
	s, _ := c.Get(sessionKey).(kernel.Session)
	return s
}

// Observe wraps each request in a span and records its latency by status.
func Observe() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx, span := tracing.Tracer().Start(req.Context(), req.Method+" "+c.Path(),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPMethodKey.String(req.Method),
					semconv.HTTPRouteKey.String(c.Path()),
				))
			defer span.End()
			c.SetRequest(req.WithContext(ctx))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			span.SetAttributes(semconv.HTTPStatusCodeKey.Int(status))
			if status >= 500 {
				span.SetStatus(codes.Error, fmt.Sprintf("status %d", status))
			}
			metric.ObserveRequest(time.Since(start), status)
			return nil
		}
	}
}

// Recover turns panics into a 500 response and logs them with the trace id.
func Recover(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					ctx := c.Request().Context()
					logger.ErrorContext(ctx, "panic while serving request",
						sl.Traced(ctx),
						slog.String("path", c.Path()),
						slog.Any("panic", r))
					err = fmt.Errorf("panic: %v", r)
				}
			}()
			return next(c)
		}
	}
}
