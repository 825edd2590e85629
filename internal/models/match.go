package models

import (
	"github.com/google/uuid"
	"time"
)

type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchAccepted  MatchStatus = "accepted"
	MatchRejected  MatchStatus = "rejected"
	MatchCompleted MatchStatus = "completed"
)

// Терминальные статусы из них выхода нет
func (s MatchStatus) IsTerminal() bool {
	return s == MatchRejected || s == MatchCompleted
}

// AllowsMessaging сообщения разрешены только после принятия матча;
// завершённый матч остаётся открытым для переписки
func (s MatchStatus) AllowsMessaging() bool {
	return s == MatchAccepted || s == MatchCompleted
}

type Match struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CreatorID uuid.UUID   `gorm:"not null;uniqueIndex:idx_match_pair"`
	BrandID   uuid.UUID   `gorm:"not null;uniqueIndex:idx_match_pair"`
	Status    MatchStatus `gorm:"not null;default:'pending';check:status IN ('pending','accepted','rejected','completed')"`

	// Детали проекта задаются при создании и дальше не меняются
	ProjectTitle        string
	ProjectDescription  string
	ProjectBudget       float64
	ProjectDeadline     *time.Time
	ProjectRequirements string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Связи
	Creator User `gorm:"foreignKey:CreatorID"`
	Brand   User `gorm:"foreignKey:BrandID"`
}

// IsParticipant обе стороны матча владеют разговором совместно
func (m *Match) IsParticipant(userID uuid.UUID) bool {
	return m.CreatorID == userID || m.BrandID == userID
}

// OtherParticipant возвращает вторую сторону матча
func (m *Match) OtherParticipant(userID uuid.UUID) uuid.UUID {
	if m.CreatorID == userID {
		return m.BrandID
	}
	return m.CreatorID
}
