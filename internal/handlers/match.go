package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ugchub/backend/internal/handlers/dto"
	"github.com/ugchub/backend/internal/middleware"
	"github.com/ugchub/backend/internal/models"
	"github.com/ugchub/backend/internal/services"
)

type MatchHandler struct {
	matches *services.MatchService
}

func NewMatchHandler(matches *services.MatchService) *MatchHandler {
	return &MatchHandler{matches: matches}
}

// CreateMatch бренд отправляет запрос криейтору
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := services.CreateMatchInput{CreatorID: req.CreatorID}
	if req.Project != nil {
		in.ProjectTitle = req.Project.Title
		in.ProjectDescription = req.Project.Description
		in.ProjectBudget = req.Project.Budget
		in.ProjectDeadline = req.Project.Deadline
		in.ProjectRequirements = dto.JoinRequirements(req.Project.Requirements)
	}

	match, err := h.matches.CreateMatch(c.Request.Context(), userID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Match request sent successfully",
		"match":   dto.NewMatchResponse(match),
	})
}

// GetMyMatches матчи текущего пользователя, свежие первыми
func (h *MatchHandler) GetMyMatches(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	matches, err := h.matches.ListMatches(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result := make([]dto.MatchResponse, len(matches))
	for i := range matches {
		result[i] = dto.NewMatchResponse(&matches[i])
	}

	c.JSON(http.StatusOK, gin.H{"matches": result})
}

// UpdateMatchStatus переход статуса через машину состояний
func (h *MatchHandler) UpdateMatchStatus(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	matchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid match id"})
		return
	}

	var req dto.UpdateMatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.MatchStatus(req.Status)
	switch status {
	case models.MatchPending, models.MatchAccepted, models.MatchRejected, models.MatchCompleted:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid match status"})
		return
	}

	match, err := h.matches.UpdateStatus(c.Request.Context(), matchID, userID, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Match " + req.Status + " successfully",
		"match":   dto.NewMatchResponse(match),
	})
}
