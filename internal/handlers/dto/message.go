package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ugchub/backend/internal/models"
)

// SendMessageRequest тело REST-отправки
type SendMessageRequest struct {
	MatchID uuid.UUID `json:"match_id" binding:"required"`
	Content string    `json:"content" binding:"required"`
	Type    string    `json:"type,omitempty"` // text, image, file, system
}

// SendMessagePayload данные события send_message. recipient_id клиент
// присылает по привычке, но получателя сервер выводит сам из матча.
type SendMessagePayload struct {
	RecipientID uuid.UUID `json:"recipient_id,omitempty"`
	MatchID     uuid.UUID `json:"match_id"`
	Content     string    `json:"content"`
	Type        string    `json:"type,omitempty"`
}

type MarkReadPayload struct {
	MatchID uuid.UUID `json:"match_id"`
}

type TypingPayload struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	IsTyping    bool      `json:"is_typing"`
}

type MessageResponse struct {
	ID          uuid.UUID  `json:"id"`
	MatchID     uuid.UUID  `json:"match_id"`
	SenderID    uuid.UUID  `json:"sender_id"`
	RecipientID uuid.UUID  `json:"recipient_id"`
	Content     string     `json:"content"`
	Type        string     `json:"type"`
	IsRead      bool       `json:"is_read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	Sender      *UserInfo  `json:"sender,omitempty"`
}

func NewMessageResponse(m *models.Message) MessageResponse {
	resp := MessageResponse{
		ID:          m.ID,
		MatchID:     m.MatchID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		Type:        m.Type,
		IsRead:      m.IsRead,
		ReadAt:      m.ReadAt,
		CreatedAt:   m.CreatedAt,
	}

	if m.Sender.ID != uuid.Nil {
		info := NewUserInfo(&m.Sender)
		resp.Sender = &info
	}

	return resp
}

type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	Company   string    `json:"company,omitempty"`
}

func NewUserInfo(u *models.User) UserInfo {
	return UserInfo{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Company:   u.Company,
	}
}

// Требования проекта храним одной строкой, наружу отдаем списком
func SplitRequirements(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func JoinRequirements(reqs []string) string {
	return strings.Join(reqs, "\n")
}
