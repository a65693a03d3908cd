package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/wastewise/wastewise-backend/internal/config"
	"github.com/wastewise/wastewise-backend/internal/handlers"
	"github.com/wastewise/wastewise-backend/internal/middleware"
	"github.com/wastewise/wastewise-backend/internal/models"
)

// HandlerDependencies carries the handlers wired in main.
type HandlerDependencies struct {
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	MissionHandler     *handlers.MissionHandler
	LeaderboardHandler *handlers.LeaderboardHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.PerMinute))

	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		public.GET("/leaderboard/:period", deps.LeaderboardHandler.GetLeaderboard)
	}

	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		missions := protected.Group("/missions")
		{
			missions.GET("", deps.MissionHandler.GetAllMissions)
			missions.POST("/complete", deps.MissionHandler.CompleteMission)
			missions.GET("/completed/:userId", deps.MissionHandler.GetCompletedMissions)
		}

		points := protected.Group("/points")
		{
			points.GET("", deps.UserHandler.GetPoints)
			points.GET("/history", deps.UserHandler.GetHistory)
			points.POST("/add",
				middleware.RequireRoles(models.RoleAdmin, models.RoleStaff),
				deps.UserHandler.AddPoints)
		}

		users := protected.Group("/users")
		users.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			users.GET("", deps.UserHandler.GetAllUsers)
			users.GET("/count", deps.UserHandler.GetUserCount)
			users.GET("/:id", deps.UserHandler.GetUserByID)
			users.PUT("/:id", deps.UserHandler.UpdateUser)
			users.DELETE("/:id", deps.UserHandler.DeleteUser)
		}
	}

	return router
}
