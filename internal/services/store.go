package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/ugchub/backend/internal/database"
	"github.com/ugchub/backend/internal/models"
)

// Store всё, что сервисам нужно от хранилища. Реализуется database.Database,
// в тестах подменяется in-memory фейком.
type Store interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindCreator(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastSeen(ctx context.Context, id uuid.UUID) error

	CreateMatch(ctx context.Context, match *models.Match) error
	GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	GetUserMatches(ctx context.Context, userID uuid.UUID) ([]models.Match, error)
	UpdateMatchStatus(ctx context.Context, matchID uuid.UUID, from, to models.MatchStatus) (int64, error)

	SaveMessage(ctx context.Context, message *models.Message) error
	GetMatchMessages(ctx context.Context, matchID uuid.UUID, limit int, beforeID *uuid.UUID) ([]models.Message, error)
	MarkMessagesRead(ctx context.Context, matchID, readerID uuid.UUID) (int64, error)
	GetUnreadCounts(ctx context.Context, userID uuid.UUID) ([]database.UnreadCount, error)
}
