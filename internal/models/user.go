package models

import (
	"github.com/google/uuid"
	"time"
)

const (
	RoleCreator = "creator"
	RoleBrand   = "brand"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	FirstName    string    `gorm:"not null"`
	LastName     string    `gorm:"not null"`
	Role         string    `gorm:"not null;check:role IN ('creator','brand')"`
	Company      string
	LastSeenAt   time.Time
	CreatedAt    time.Time
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
