package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	v1 "github.com/thesrcielos/BananaRealm/api/v1"
	"github.com/thesrcielos/BananaRealm/internal/achievement"
	"github.com/thesrcielos/BananaRealm/internal/config"
	"github.com/thesrcielos/BananaRealm/internal/game"
	"github.com/thesrcielos/BananaRealm/internal/leaderboard"
	"github.com/thesrcielos/BananaRealm/internal/logger"
	"github.com/thesrcielos/BananaRealm/internal/realtime"
	"github.com/thesrcielos/BananaRealm/internal/scoring"
	"github.com/thesrcielos/BananaRealm/internal/store"
	"github.com/thesrcielos/BananaRealm/internal/user"
	"github.com/thesrcielos/BananaRealm/pkg/db"
	"github.com/thesrcielos/BananaRealm/websocket"
	"github.com/thesrcielos/BananaRealm/websocket/actions"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}
	user.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	if err := db.Init(cfg); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	if err := db.DB.AutoMigrate(&user.User{}); err != nil {
		logger.Error("Error migrating users: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gw := store.NewRedisGateway(db.Rdb, cfg.Redis.KeyPrefix)
	notifier := realtime.NewNotifier(db.Rdb, cfg.Events.Channel, cfg.Events.InstanceID)
	if err := notifier.Subscribe(ctx); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	userService := user.NewUserService(user.NewGormUserRepository(db.DB))
	gameRepo := game.NewStoreRepository(gw)
	leaderboardService := leaderboard.NewService(leaderboard.NewStoreRepository(gw), userService)
	achievementService := achievement.NewService(achievement.NewStoreRepository(gw), gameRepo, notifier)

	v1.UserService = userService
	v1.StatsService = game.NewStatsService(gameRepo)
	v1.LeaderboardService = leaderboardService
	v1.AchievementService = achievementService
	v1.Aggregator = scoring.NewAggregator(gameRepo, leaderboardService, achievementService, userService)
	actions.Ranks = leaderboardService

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	v1.Register(e, v1.RouteConfig{
		SubmitPerMinute: cfg.Server.SubmitRatePerMinute,
		AdminUserIDs:    cfg.Admin.UserIDs,
	})
	e.GET("/events", websocket.WebSocketHandler)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil {
			logger.Info("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down: %v", err)
	}
}
