package middleware

import "github.com/labstack/echo/v4"

// deny answers with the same envelope the handlers use.
func deny(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"status": "error", "message": message})
}
