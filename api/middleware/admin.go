package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin lets through only callers whose user id is in userIDs. It must
// run after SetupJWTMiddleware. An empty list locks the route for everyone.
func RequireAdmin(userIDs []string) echo.MiddlewareFunc {
	admins := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		admins[id] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := CurrentIdentity(c)
			if id == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
			}
			if _, ok := admins[id.UserID]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}
