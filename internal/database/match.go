package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ugchub/backend/internal/models"
)

func (d *Database) CreateMatch(ctx context.Context, match *models.Match) error {
	return d.db.WithContext(ctx).Create(match).Error
}

func (d *Database) GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	var match models.Match
	if err := d.db.WithContext(ctx).First(&match, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

// GetUserMatches матчи пользователя в любой из ролей, свежие первыми
func (d *Database) GetUserMatches(ctx context.Context, userID uuid.UUID) ([]models.Match, error) {
	var matches []models.Match

	err := d.db.WithContext(ctx).
		Where("creator_id = ? OR brand_id = ?", userID, userID).
		Order("updated_at DESC").
		Preload("Creator").
		Preload("Brand").
		Find(&matches).Error

	return matches, err
}

// UpdateMatchStatus условный переход статуса. Обновление проходит только
// если текущий статус совпадает с ожидаемым, поэтому из двух одновременных
// переходов выигрывает ровно один — второй получает rows == 0.
func (d *Database) UpdateMatchStatus(ctx context.Context, matchID uuid.UUID, from, to models.MatchStatus) (int64, error) {
	res := d.db.WithContext(ctx).
		Model(&models.Match{}).
		Where("id = ? AND status = ?", matchID, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now()})

	return res.RowsAffected, res.Error
}
