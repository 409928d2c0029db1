package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Logging writes one structured entry per HTTP request.
func Logging(logger logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			entry := logger.WithFields(logrus.Fields{
				"request_id": RequestIDFromContext(c),
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"status":     status,
				"latency":    latency.String(),
			})
			if username := UsernameFromContext(c); username != "" {
				entry = entry.WithField("username", username)
			}

			switch {
			case status >= 500:
				cause := err
				if cause == nil {
					cause, _ = c.Get(ContextKeyError).(error)
				}
				if cause != nil {
					entry = entry.WithError(cause)
				}
				entry.Error("request failed")
			case status >= 400:
				entry.Warn("request rejected")
			default:
				entry.Info("request handled")
			}

			return err
		}
	}
}
