package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	api_middleware "github.com/thesrcielos/BananaRealm/api/middleware"
	"github.com/thesrcielos/BananaRealm/internal/game"
	"github.com/thesrcielos/BananaRealm/internal/scoring"
)

var Aggregator *scoring.Aggregator

func RegisterGameRoutes(g *echo.Group, limiter echo.MiddlewareFunc) {
	g.POST("", SubmitGameHandler, limiter)
	g.GET("/history", GetHistoryHandler)
}

// SubmitGameHandler answers 202 even when storage failed; saved tells the
// client whether the score event was recorded.
func SubmitGameHandler(c echo.Context) error {
	var r game.GameResult
	if err := bindAndValidate(c, &r); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome := Aggregator.Submit(c.Request().Context(), api_middleware.CurrentIdentity(c), r)
	if outcome == nil {
		return c.JSON(http.StatusAccepted, echo.Map{"saved": false})
	}
	return c.JSON(http.StatusAccepted, echo.Map{
		"saved":   true,
		"outcome": outcome,
	})
}

func GetHistoryHandler(c echo.Context) error {
	limit, err := queryLimit(c, 0)
	if err != nil {
		return err
	}
	events := StatsService.History(c.Request().Context(), api_middleware.CurrentIdentity(c), limit)
	return c.JSON(http.StatusOK, echo.Map{"games": events})
}

func queryLimit(c echo.Context, fallback int) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, INVALID_REQUEST)
	}
	return limit, nil
}
