package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const allowedHeaders = "authorization, x-client-info, apikey, content-type"

// CORS mirrors the permissive policy of the public recommendation API:
// any origin, the client headers the frontend sends, and an empty 200
// for OPTIONS preflight requests.
func CORS() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Response().Header()
			header.Set("Access-Control-Allow-Origin", "*")
			header.Set("Access-Control-Allow-Headers", allowedHeaders)

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}

			return next(c)
		}
	}
}
