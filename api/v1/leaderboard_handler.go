package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	api_middleware "github.com/thesrcielos/BananaRealm/api/middleware"
	"github.com/thesrcielos/BananaRealm/internal/game"
	"github.com/thesrcielos/BananaRealm/internal/leaderboard"
)

const defaultLeaderboardLimit = 100

var LeaderboardService *leaderboard.Service

func RegisterLeaderboardRoutes(g *echo.Group, auth, admin echo.MiddlewareFunc) {
	g.GET("/:difficulty", GetLeaderboardHandler)
	g.GET("/:difficulty/rank", GetRankHandler, auth)
	g.POST("/backfill", BackfillUsernamesHandler, auth, admin)
}

func difficultyParam(c echo.Context) (game.Difficulty, error) {
	d, err := game.ParseDifficulty(c.Param("difficulty"))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "unknown difficulty")
	}
	return d, nil
}

func GetLeaderboardHandler(c echo.Context) error {
	d, err := difficultyParam(c)
	if err != nil {
		return err
	}
	limit, err := queryLimit(c, defaultLeaderboardLimit)
	if err != nil {
		return err
	}
	entries := LeaderboardService.GetTop(c.Request().Context(), d, limit)
	return c.JSON(http.StatusOK, echo.Map{
		"difficulty": d,
		"entries":    entries,
	})
}

func GetRankHandler(c echo.Context) error {
	d, err := difficultyParam(c)
	if err != nil {
		return err
	}
	rank, ok := LeaderboardService.GetUserRank(c.Request().Context(), api_middleware.CurrentIdentity(c), d)
	return c.JSON(http.StatusOK, leaderboard.RankResponse{Difficulty: d, Rank: rank, Ranked: ok})
}

func BackfillUsernamesHandler(c echo.Context) error {
	updated, err := LeaderboardService.BackfillUsernames(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": updated})
}
