package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	api_middleware "github.com/thesrcielos/BananaRealm/api/middleware"
	"github.com/thesrcielos/BananaRealm/internal/game"
	"github.com/thesrcielos/BananaRealm/internal/user"
)

var (
	UserService  *user.UserService
	StatsService *game.StatsService
)

func RegisterUserRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/signup", SignupHandler)
	g.POST("/login", LoginHandler)

	me := g.Group("/me", auth)
	me.GET("", ProfileHandler)
	me.PUT("", UpdateUsernameHandler)
	me.GET("/stats", GetUserStatsHandler)
	me.GET("/progress", GetUserProgressHandler)
}

func SignupHandler(c echo.Context) error {
	var u user.User
	if err := bindAndValidate(c, &u); err != nil {
		return err
	}
	token, err := UserService.Signup(c.Request().Context(), u)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"token": token})
}

func LoginHandler(c echo.Context) error {
	var req user.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	token, err := UserService.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

func ProfileHandler(c echo.Context) error {
	profile, err := UserService.Profile(c.Request().Context(), api_middleware.CurrentIdentity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func UpdateUsernameHandler(c echo.Context) error {
	var req user.UsernameRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	token, err := UserService.UpdateUsername(c.Request().Context(), api_middleware.CurrentIdentity(c), req.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

func GetUserStatsHandler(c echo.Context) error {
	stats := StatsService.GlobalStats(c.Request().Context(), api_middleware.CurrentIdentity(c))
	return c.JSON(http.StatusOK, echo.Map{"stats": stats})
}

func GetUserProgressHandler(c echo.Context) error {
	progress := StatsService.Progress(c.Request().Context(), api_middleware.CurrentIdentity(c))
	return c.JSON(http.StatusOK, echo.Map{
		"progress":     progress,
		"difficulties": difficultySettings(),
	})
}

func difficultySettings() map[game.Difficulty]game.Settings {
	out := make(map[game.Difficulty]game.Settings, len(game.Difficulties))
	for _, d := range game.Difficulties {
		out[d] = d.Settings()
	}
	return out
}
