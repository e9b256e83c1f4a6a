package api

import (
	"net/http"
	"time"

	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/yakoovad/club-api/internal/auth"
	"github.com/yakoovad/club-api/internal/service"
	"github.com/yakoovad/club-api/pkg/logger"
)

const principalKey = "principal"

func ZapLoggerMiddleware(l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			res := c.Response()

			requestID := res.Header().Get(echo.HeaderXRequestID)

			reqLogger := l.With(
				zap.String("request_id", requestID),
			)

			ctx := logger.WithLogger(req.Context(), reqLogger)
			c.SetRequest(req.WithContext(ctx))

			err := next(c)

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.String("remote_ip", c.RealIP()),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.Int64("bytes_in", req.ContentLength),
				zap.Int64("bytes_out", res.Size),
			}

			if err != nil {
				fields = append(fields, zap.Error(err))
				reqLogger.Error("request failed", fields...)
			} else {
				reqLogger.Info("request completed", fields...)
			}

			return err
		}
	}
}

// AllowAll lets every request through. Used when authorization happens
// entirely outside the process.
func AllowAll() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return next
	}
}

// CookieAuthMiddleware requires a valid session token in the named cookie or
// in a Bearer Authorization header.
func CookieAuthMiddleware(a *auth.Authenticator, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := auth.TokenFromRequest(c.Request(), cookieName)
			if err != nil {
				return unauthorized(c, err)
			}

			subject, ok := a.Subject(token)
			if !ok {
				return unauthorized(c, auth.ErrInvalidToken)
			}

			return next(withPrincipal(c, subject))
		}
	}
}

// GatewayAuthMiddleware trusts the API Gateway authorizer that already ran
// for the proxied event and only checks that it produced a principal.
func GatewayAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			gw, ok := core.GetAPIGatewayContextFromContext(c.Request().Context())
			if !ok {
				return unauthorized(c, nil)
			}

			principal, _ := gw.Authorizer["principalId"].(string)
			if principal == "" {
				return unauthorized(c, nil)
			}

			return next(withPrincipal(c, principal))
		}
	}
}

func withPrincipal(c echo.Context, principal string) echo.Context {
	c.Set(principalKey, principal)

	req := c.Request()
	l := logger.FromContext(req.Context()).With(zap.String("principal", principal))
	c.SetRequest(req.WithContext(logger.WithLogger(req.Context(), l)))
	return c
}

func unauthorized(c echo.Context, err error) error {
	logger.FromContext(c.Request().Context()).Warn("unauthorized request", zap.Error(err))
	return c.JSON(http.StatusUnauthorized, service.NewError(service.ErrorCodeUnauthorized, "unauthorized").WithCause(err))
}
