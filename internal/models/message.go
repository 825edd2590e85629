package models

import (
	"github.com/google/uuid"
	"time"
)

const MaxMessageLength = 1000

type Message struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	MatchID     uuid.UUID `gorm:"not null;index:idx_match_created,priority:1"`
	SenderID    uuid.UUID `gorm:"not null"`
	RecipientID uuid.UUID `gorm:"not null;index:idx_recipient_unread,priority:1"`
	Content     string    `gorm:"not null;size:1000"`
	Type        string    `gorm:"default:'text';check:type IN ('text','image','file','system')"`
	IsRead      bool      `gorm:"default:false;index:idx_recipient_unread,priority:2"`
	ReadAt      *time.Time
	CreatedAt   time.Time `gorm:"index:idx_match_created,priority:2"`

	// Связи
	Sender User  `gorm:"foreignKey:SenderID"`
	Match  Match `gorm:"foreignKey:MatchID"`
}
