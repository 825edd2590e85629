package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ugchub/backend/internal/handlers/dto"
	"github.com/ugchub/backend/internal/middleware"
	"github.com/ugchub/backend/internal/services"
)

// HTTPMessageHandler REST-зеркало живого канала для клиентов без
// постоянного соединения. Вся проверка и сохранение идут через тот же
// MessageService, что и у WebSocket.
type HTTPMessageHandler struct {
	messages *services.MessageService
}

func NewHTTPMessageHandler(messages *services.MessageService) *HTTPMessageHandler {
	return &HTTPMessageHandler{messages: messages}
}

// GetMatchMessages история сообщений матча по возрастанию времени
func (h *HTTPMessageHandler) GetMatchMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	matchID, err := uuid.Parse(c.Param("matchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid match id"})
		return
	}

	// Параметры пагинации
	limit := 0
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var beforeID *uuid.UUID
	if before := c.Query("before"); before != "" {
		if id, err := uuid.Parse(before); err == nil {
			beforeID = &id
		}
	}

	messages, err := h.messages.MessagesForMatch(c.Request.Context(), matchID, userID, limit, beforeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		result[i] = dto.NewMessageResponse(&messages[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": result,
		"has_more": limit > 0 && len(messages) == limit,
	})
}

// SendMessage отправка сообщения через HTTP (альтернатива WebSocket)
func (h *HTTPMessageHandler) SendMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messages.SendMessage(c.Request.Context(), req.MatchID, userID, req.Content, req.Type)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent successfully",
		"data":    dto.NewMessageResponse(message),
	})
}

// MarkMessagesRead помечает прочитанным всё входящее в матче
func (h *HTTPMessageHandler) MarkMessagesRead(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	matchID, err := uuid.Parse(c.Param("matchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid match id"})
		return
	}

	marked, err := h.messages.MarkRead(c.Request.Context(), matchID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"match_id": matchID,
		"marked":   marked,
	})
}

// GetUnreadCounts счётчики непрочитанного по матчам плюс общий итог
func (h *HTTPMessageHandler) GetUnreadCounts(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	counts, err := h.messages.UnreadCounts(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}
