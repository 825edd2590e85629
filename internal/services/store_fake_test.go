package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ugchub/backend/internal/database"
	"github.com/ugchub/backend/internal/models"
	"gorm.io/gorm"
)

// fakeStore in-memory реализация Store для тестов сервисов.
// Повторяет контракт database.Database: уникальность пары, условный
// переход статуса, порядок вставки сообщений.
type fakeStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*models.User
	matches  map[uuid.UUID]*models.Match
	messages []*models.Message

	saveMessageErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   make(map[uuid.UUID]*models.User),
		matches: make(map[uuid.UUID]*models.Match),
	}
}

func (f *fakeStore) addUser(role string) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()

	u := &models.User{
		ID:        uuid.New(),
		Email:     uuid.NewString() + "@test.local",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		CreatedAt: time.Now(),
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) FindCreator(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok || u.Role != models.RoleCreator {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) UpdateLastSeen(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u, ok := f.users[id]; ok {
		u.LastSeenAt = time.Now()
	}
	return nil
}

func (f *fakeStore) CreateMatch(_ context.Context, match *models.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, m := range f.matches {
		if m.CreatorID == match.CreatorID && m.BrandID == match.BrandID {
			return gorm.ErrDuplicatedKey
		}
	}

	match.ID = uuid.New()
	match.CreatedAt = time.Now()
	match.UpdatedAt = match.CreatedAt
	cp := *match
	f.matches[match.ID] = &cp
	return nil
}

func (f *fakeStore) GetMatch(_ context.Context, id uuid.UUID) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, ok := f.matches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeStore) GetUserMatches(_ context.Context, userID uuid.UUID) ([]models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []models.Match
	for _, m := range f.matches {
		if m.CreatorID == userID || m.BrandID == userID {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (f *fakeStore) UpdateMatchStatus(_ context.Context, matchID uuid.UUID, from, to models.MatchStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, ok := f.matches[matchID]
	if !ok || m.Status != from {
		return 0, nil
	}
	m.Status = to
	m.UpdatedAt = time.Now()
	return 1, nil
}

func (f *fakeStore) SaveMessage(_ context.Context, message *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveMessageErr != nil {
		return f.saveMessageErr
	}

	message.ID = uuid.New()
	message.CreatedAt = time.Now()
	cp := *message
	f.messages = append(f.messages, &cp)
	return nil
}

func (f *fakeStore) GetMatchMessages(_ context.Context, matchID uuid.UUID, limit int, beforeID *uuid.UUID) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []models.Message
	for _, m := range f.messages {
		if m.MatchID == matchID {
			result = append(result, *m)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[len(result)-limit:]
	}
	return result, nil
}

func (f *fakeStore) MarkMessagesRead(_ context.Context, matchID, readerID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var rows int64
	now := time.Now()
	for _, m := range f.messages {
		if m.MatchID == matchID && m.RecipientID == readerID && !m.IsRead {
			m.IsRead = true
			m.ReadAt = &now
			rows++
		}
	}
	return rows, nil
}

func (f *fakeStore) GetUnreadCounts(_ context.Context, userID uuid.UUID) ([]database.UnreadCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	byMatch := make(map[uuid.UUID]int64)
	for _, m := range f.messages {
		if m.RecipientID == userID && !m.IsRead {
			byMatch[m.MatchID]++
		}
	}

	var counts []database.UnreadCount
	for matchID, count := range byMatch {
		counts = append(counts, database.UnreadCount{MatchID: matchID, Count: count})
	}
	return counts, nil
}

func (f *fakeStore) messageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}
