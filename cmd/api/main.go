package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/wastewise/wastewise-backend/api/routes"
	"github.com/wastewise/wastewise-backend/internal/config"
	"github.com/wastewise/wastewise-backend/internal/handlers"
	"github.com/wastewise/wastewise-backend/internal/repositories"
	mongorepo "github.com/wastewise/wastewise-backend/internal/repositories/mongodb"
	"github.com/wastewise/wastewise-backend/internal/services"
	"github.com/wastewise/wastewise-backend/pkg/logger"
	"github.com/wastewise/wastewise-backend/pkg/mongodb"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(cfg.Log); err != nil {
		panic(err)
	}
	defer logger.Logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoClient, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
	cancel()
	if err != nil {
		logger.Sugar.Fatalw("failed to connect to MongoDB", "error", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Sugar.Errorw("error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	var userRepo repositories.UserRepository = mongorepo.NewUserRepository(db)
	var missionRepo repositories.MissionRepository = mongorepo.NewMissionRepository(db)
	var missionLogRepo repositories.MissionLogRepository = mongorepo.NewMissionLogRepository(db)

	// The unique indexes are the dedup gates; refuse to serve without them.
	indexCtx, indexCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer indexCancel()
	if err := missionRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar.Fatalw("failed to ensure mission indexes", "error", err)
	}
	if err := missionLogRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar.Fatalw("failed to ensure mission log indexes", "error", err)
	}

	userService := services.NewUserService(userRepo)
	missionService := services.NewMissionService(missionRepo, missionLogRepo, userRepo)
	leaderboardService := services.NewLeaderboardService(userRepo, cfg.WeekStartDay())
	authService := services.NewAuthService(userRepo, userService, missionService, cfg)

	handlerDeps := routes.HandlerDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService),
		UserHandler:        handlers.NewUserHandler(userService),
		MissionHandler:     handlers.NewMissionHandler(missionService),
		LeaderboardHandler: handlers.NewLeaderboardHandler(leaderboardService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Sugar.Infow("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar.Fatalw("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar.Fatalw("server forced to shutdown", "error", err)
	}

	logger.Sugar.Info("server exiting")
}
