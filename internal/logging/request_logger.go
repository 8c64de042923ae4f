package logging

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestMiddleware attaches a per-request logger to the context and
// emits one line per request once the handler returns.
func RequestMiddleware(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			l := base.With(
				"method", req.Method,
				"path", req.URL.Path,
				"remote_ip", c.RealIP(),
			)
			if rid := req.Header.Get(echo.HeaderXRequestID); rid != "" {
				l = l.With("request_id", rid)
			}
			c.SetRequest(req.WithContext(IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
			}

			status := c.Response().Status
			args := []any{
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"bytes", c.Response().Size,
			}
			switch {
			case err != nil:
				l.Error("request", append(args, "error", err.Error())...)
			case status >= 500:
				l.Error("request", args...)
			case status >= 400:
				l.Warn("request", args...)
			default:
				l.Info("request", args...)
			}
			return nil
		}
	}
}
