package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wastewise/wastewise-backend/internal/models"
	"github.com/wastewise/wastewise-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MissionHandler handles mission-related HTTP requests
type MissionHandler struct {
	missionService *services.MissionService
}

// NewMissionHandler creates a new MissionHandler
func NewMissionHandler(missionService *services.MissionService) *MissionHandler {
	return &MissionHandler{
		missionService: missionService,
	}
}

// CompleteMission handles POST /missions/complete
func (h *MissionHandler) CompleteMission(c *gin.Context) {
	var req models.CompleteMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	result, err := h.missionService.CompleteMission(c.Request.Context(), userID, req.Trigger)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidMission):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mission"})
		case errors.Is(err, services.ErrAlreadyCompletedToday):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Mission already completed today",
			})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete mission"})
		}
		return
	}

	c.JSON(http.StatusOK, models.CompleteMissionResponse{
		Success:     true,
		Message:     fmt.Sprintf("Mission '%s' completed!", result.MissionName),
		Points:      result.Points,
		TotalPoints: result.TotalPoints,
	})
}

// GetCompletedMissions handles GET /missions/completed/:userId and returns a
// missionId -> true map for today's completions.
func (h *MissionHandler) GetCompletedMissions(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	completed, err := h.missionService.CompletedToday(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get completed missions"})
		return
	}

	c.JSON(http.StatusOK, completed)
}

// GetAllMissions handles GET /missions
func (h *MissionHandler) GetAllMissions(c *gin.Context) {
	missions, err := h.missionService.ListMissions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get missions"})
		return
	}

	c.JSON(http.StatusOK, missions)
}
