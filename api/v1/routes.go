package v1

import (
	"github.com/labstack/echo/v4"
	api_middleware "github.com/thesrcielos/BananaRealm/api/middleware"
)

type RouteConfig struct {
	SubmitPerMinute int
	// AdminUserIDs may run maintenance endpoints such as the username backfill.
	AdminUserIDs []string
}

// Register mounts the whole v1 API on e. The package-level services must be
// set first.
func Register(e *echo.Echo, cfg RouteConfig) {
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler(e)

	auth := api_middleware.SetupJWTMiddleware()
	api := e.Group("/api/v1")

	RegisterUserRoutes(api.Group("/users"), auth)
	RegisterGameRoutes(api.Group("/games", auth), api_middleware.SubmitRateLimiter(cfg.SubmitPerMinute))
	RegisterLeaderboardRoutes(api.Group("/leaderboard"), auth, api_middleware.RequireAdmin(cfg.AdminUserIDs))
	RegisterAchievementRoutes(api.Group("/achievements", auth))
}
