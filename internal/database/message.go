package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ugchub/backend/internal/models"
)

func (d *Database) SaveMessage(ctx context.Context, message *models.Message) error {
	return d.db.WithContext(ctx).Create(message).Error
}

func (d *Database) GetMessage(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	var message models.Message
	err := d.db.WithContext(ctx).Preload("Sender").First(&message, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// GetMatchMessages история матча по возрастанию времени; id разруливает
// сообщения с одинаковым created_at
func (d *Database) GetMatchMessages(ctx context.Context, matchID uuid.UUID, limit int, beforeID *uuid.UUID) ([]models.Message, error) {
	var messages []models.Message

	query := d.db.WithContext(ctx).Where("match_id = ?", matchID)

	if beforeID != nil {
		var beforeMsg models.Message
		if err := d.db.WithContext(ctx).First(&beforeMsg, "id = ?", beforeID).Error; err == nil {
			query = query.Where("(created_at, id) < (?, ?)", beforeMsg.CreatedAt, beforeMsg.ID)
		}
	}

	if limit > 0 {
		// Последняя страница истории: берем limit свежих и разворачиваем
		err := query.
			Order("created_at DESC, id DESC").
			Limit(limit).
			Preload("Sender").
			Find(&messages).Error
		if err != nil {
			return nil, err
		}

		for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
			messages[i], messages[j] = messages[j], messages[i]
		}
		return messages, nil
	}

	err := query.
		Order("created_at ASC, id ASC").
		Preload("Sender").
		Find(&messages).Error

	return messages, err
}

// MarkMessagesRead помечает прочитанным всё непрочитанное для читателя
// в матче. Условие is_read = false делает операцию идемпотентной: повторный
// вызов не трогает ни одной строки и не перезаписывает read_at.
func (d *Database) MarkMessagesRead(ctx context.Context, matchID, readerID uuid.UUID) (int64, error) {
	res := d.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("match_id = ? AND recipient_id = ? AND is_read = ?", matchID, readerID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})

	return res.RowsAffected, res.Error
}

type UnreadCount struct {
	MatchID uuid.UUID
	Count   int64
}

// GetUnreadCounts количество непрочитанных на матч для пользователя
func (d *Database) GetUnreadCounts(ctx context.Context, userID uuid.UUID) ([]UnreadCount, error) {
	var counts []UnreadCount

	err := d.db.WithContext(ctx).
		Model(&models.Message{}).
		Select("match_id, COUNT(*) as count").
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Group("match_id").
		Scan(&counts).Error

	return counts, err
}
