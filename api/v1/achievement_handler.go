package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	api_middleware "github.com/thesrcielos/BananaRealm/api/middleware"
	"github.com/thesrcielos/BananaRealm/internal/achievement"
)

var AchievementService *achievement.Service

func RegisterAchievementRoutes(g *echo.Group) {
	g.GET("", GetAchievementsHandler)
	g.GET("/catalog", GetAchievementBoardHandler)
}

func GetAchievementsHandler(c echo.Context) error {
	unlocked := AchievementService.List(c.Request().Context(), api_middleware.CurrentIdentity(c))
	return c.JSON(http.StatusOK, echo.Map{"achievements": unlocked})
}

func GetAchievementBoardHandler(c echo.Context) error {
	board := AchievementService.Board(c.Request().Context(), api_middleware.CurrentIdentity(c))
	return c.JSON(http.StatusOK, board)
}
