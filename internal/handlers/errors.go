package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ugchub/backend/internal/services"
)

// respondServiceError переводит доменную ошибку в HTTP-статус.
// Текст ошибки отдаем как есть: клиенту нужна конкретная причина отказа,
// а не общий "request failed".
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrCreatorNotFound),
		errors.Is(err, services.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateMatch),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrMatchNotActive):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrMessageTooLong),
		errors.Is(err, services.ErrEmptyContent),
		errors.Is(err, services.ErrInvalidType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrTransientStorage):
		// Детали сбоя хранилища наружу не отдаем
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": services.ErrTransientStorage.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
