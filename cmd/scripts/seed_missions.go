package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/wastewise/wastewise-backend/internal/config"
	mongorepo "github.com/wastewise/wastewise-backend/internal/repositories/mongodb"
	"github.com/wastewise/wastewise-backend/internal/services"
	"github.com/wastewise/wastewise-backend/pkg/logger"
	"github.com/wastewise/wastewise-backend/pkg/mongodb"
)

// Seeds the mission catalog. Safe to re-run: missions already present are
// skipped.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log); err != nil {
		panic(err)
	}
	defer logger.Logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoClient, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
	if err != nil {
		logger.Sugar.Fatalw("failed to connect to MongoDB", "error", err)
	}
	defer mongoClient.Disconnect(context.Background())

	db := mongoClient.Database(cfg.MongoDB.Database)
	missionRepo := mongorepo.NewMissionRepository(db)
	missionLogRepo := mongorepo.NewMissionLogRepository(db)
	userRepo := mongorepo.NewUserRepository(db)

	if err := missionRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar.Fatalw("failed to ensure mission indexes", "error", err)
	}

	missionService := services.NewMissionService(missionRepo, missionLogRepo, userRepo)
	created, err := missionService.Seed(ctx, services.DefaultMissions())
	if err != nil {
		logger.Sugar.Fatalw("seeding failed", "created", created, "error", err)
	}

	logger.Sugar.Infow("seeding finished", "created", created)
}
