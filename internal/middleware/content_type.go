package middleware

import (
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireJSON answers 415 for POST/PUT/PATCH bodies that are not application/json.
func RequireJSON() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
			default:
				return next(c)
			}

			// bodyless POST (logout, seed) is fine
			if req.ContentLength == 0 && req.Header.Get(echo.HeaderContentType) == "" {
				return next(c)
			}

			mt, _, err := mime.ParseMediaType(req.Header.Get(echo.HeaderContentType))
			if err != nil || mt != echo.MIMEApplicationJSON {
				return c.JSON(http.StatusUnsupportedMediaType, errorJSON("content type must be application/json"))
			}
			return next(c)
		}
	}
}
