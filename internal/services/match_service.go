package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ugchub/backend/internal/models"
	"gorm.io/gorm"
)

// Таблица разрешённых переходов. Всё, чего здесь нет, запрещено:
// терминальные статусы не имеют исходящих переходов.
var matchTransitions = map[models.MatchStatus][]models.MatchStatus{
	models.MatchPending:  {models.MatchAccepted, models.MatchRejected},
	models.MatchAccepted: {models.MatchCompleted},
}

func transitionAllowed(from, to models.MatchStatus) bool {
	for _, s := range matchTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type CreateMatchInput struct {
	CreatorID           uuid.UUID
	ProjectTitle        string
	ProjectDescription  string
	ProjectBudget       float64
	ProjectDeadline     *time.Time
	ProjectRequirements string
}

type MatchService struct {
	store Store
}

func NewMatchService(store Store) *MatchService {
	return &MatchService{store: store}
}

// CreateMatch бренд отправляет запрос криейтору. Повторный запрос к тому же
// криейтору отклоняется, а не возвращает старый матч: иначе бренд молча
// получил бы устаревшие детали проекта.
func (s *MatchService) CreateMatch(ctx context.Context, brandID uuid.UUID, in CreateMatchInput) (*models.Match, error) {
	brand, err := s.store.GetUser(ctx, brandID)
	if err != nil {
		return nil, storageErr(err, ErrNotAuthorized)
	}
	if brand.Role != models.RoleBrand {
		return nil, fmt.Errorf("%w: only brands can send match requests", ErrNotAuthorized)
	}

	if _, err := s.store.FindCreator(ctx, in.CreatorID); err != nil {
		return nil, storageErr(err, ErrCreatorNotFound)
	}

	match := &models.Match{
		CreatorID:           in.CreatorID,
		BrandID:             brandID,
		Status:              models.MatchPending,
		ProjectTitle:        in.ProjectTitle,
		ProjectDescription:  in.ProjectDescription,
		ProjectBudget:       in.ProjectBudget,
		ProjectDeadline:     in.ProjectDeadline,
		ProjectRequirements: in.ProjectRequirements,
	}

	if err := s.store.CreateMatch(ctx, match); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateMatch
		}
		return nil, fmt.Errorf("%w: %v", ErrTransientStorage, err)
	}

	return match, nil
}

func (s *MatchService) ListMatches(ctx context.Context, userID uuid.UUID) ([]models.Match, error) {
	matches, err := s.store.GetUserMatches(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransientStorage, err)
	}
	return matches, nil
}

func (s *MatchService) GetMatch(ctx context.Context, matchID, userID uuid.UUID) (*models.Match, error) {
	match, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, storageErr(err, ErrMatchNotFound)
	}
	if !match.IsParticipant(userID) {
		return nil, fmt.Errorf("%w: you are not part of this match", ErrNotAuthorized)
	}
	return match, nil
}

// UpdateStatus переводит матч в новый статус от имени userID.
// Принять или отклонить может только криейтор, завершить — только бренд.
func (s *MatchService) UpdateStatus(ctx context.Context, matchID, userID uuid.UUID, to models.MatchStatus) (*models.Match, error) {
	match, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, storageErr(err, ErrMatchNotFound)
	}

	if !match.IsParticipant(userID) {
		return nil, fmt.Errorf("%w: you are not part of this match", ErrNotAuthorized)
	}

	if !transitionAllowed(match.Status, to) {
		return nil, fmt.Errorf("%w: cannot go from %s to %s", ErrInvalidTransition, match.Status, to)
	}

	switch to {
	case models.MatchAccepted, models.MatchRejected:
		if userID != match.CreatorID {
			return nil, fmt.Errorf("%w: only the creator can accept or reject a match", ErrNotAuthorized)
		}
	case models.MatchCompleted:
		if userID != match.BrandID {
			return nil, fmt.Errorf("%w: only the brand can complete a match", ErrNotAuthorized)
		}
	}

	// Условное обновление: из двух одновременных переходов пройдёт один,
	// проигравший увидит rows == 0
	rows, err := s.store.UpdateMatchStatus(ctx, matchID, match.Status, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransientStorage, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: match is no longer %s", ErrInvalidTransition, match.Status)
	}

	match.Status = to
	return match, nil
}

// storageErr превращает "не найдено" в доменную ошибку, остальное считает
// временным сбоем хранилища
func storageErr(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("%w: %v", ErrTransientStorage, err)
}
