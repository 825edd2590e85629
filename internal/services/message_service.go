package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/ugchub/backend/internal/models"
)

// Delivery пуш доставленного сообщения в живые соединения получателя.
// Доставка best-effort: сообщение уже сохранено, офлайн получатель
// заберёт его через REST.
type Delivery interface {
	MessageCreated(message *models.Message)
}

type UnreadCounts struct {
	Total       int64               `json:"total_unread"`
	MatchCounts map[uuid.UUID]int64 `json:"match_counts"`
}

type MessageService struct {
	store    Store
	delivery Delivery
	notifier Notifier
}

func NewMessageService(store Store, delivery Delivery, notifier Notifier) *MessageService {
	return &MessageService{store: store, delivery: delivery, notifier: notifier}
}

// SendMessage единственный путь отправки для обоих транспортов.
// Сначала сохраняем, потом пушим и уведомляем: провал доставки или почты
// никогда не откатывает сообщение.
func (s *MessageService) SendMessage(ctx context.Context, matchID, senderID uuid.UUID, content, msgType string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > models.MaxMessageLength {
		return nil, fmt.Errorf("%w: %d characters max", ErrMessageTooLong, models.MaxMessageLength)
	}

	switch msgType {
	case "":
		msgType = "text"
	case "text", "image", "file", "system":
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidType, msgType)
	}

	match, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, storageErr(err, ErrMatchNotFound)
	}

	if !match.IsParticipant(senderID) {
		return nil, fmt.Errorf("%w: you are not part of this match", ErrNotAuthorized)
	}

	if !match.Status.AllowsMessaging() {
		return nil, fmt.Errorf("%w: match is %s", ErrMatchNotActive, match.Status)
	}

	message := &models.Message{
		MatchID:     matchID,
		SenderID:    senderID,
		RecipientID: match.OtherParticipant(senderID),
		Content:     content,
		Type:        msgType,
	}

	if err := s.store.SaveMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransientStorage, err)
	}

	if s.delivery != nil {
		s.delivery.MessageCreated(message)
	}

	if s.notifier != nil {
		go s.notifyRecipient(message)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.UpdateLastSeen(ctx, senderID); err != nil {
			log.Printf("Failed to update last seen for %s: %v", senderID, err)
		}
	}()

	return message, nil
}

// notifyRecipient отдельная горутина, отправитель её не ждёт.
// Ошибки логируются и выбрасываются.
func (s *MessageService) notifyRecipient(message *models.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err := s.notifier.NotifyNewMessage(ctx, message.RecipientID, message.SenderID, message.Content)
	if err != nil {
		log.Printf("Notification failed for message %s: %v", message.ID, err)
	}
}

// MessagesForMatch история переписки, старые сообщения первыми
func (s *MessageService) MessagesForMatch(ctx context.Context, matchID, userID uuid.UUID, limit int, beforeID *uuid.UUID) ([]models.Message, error) {
	match, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, storageErr(err, ErrMatchNotFound)
	}

	if !match.IsParticipant(userID) {
		return nil, fmt.Errorf("%w: you are not part of this match", ErrNotAuthorized)
	}

	messages, err := s.store.GetMatchMessages(ctx, matchID, limit, beforeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransientStorage, err)
	}
	return messages, nil
}

// MarkRead помечает прочитанными все сообщения матча, адресованные читателю.
// Идемпотентна: повторный вызов ничего не меняет.
func (s *MessageService) MarkRead(ctx context.Context, matchID, readerID uuid.UUID) (int64, error) {
	match, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return 0, storageErr(err, ErrMatchNotFound)
	}

	if !match.IsParticipant(readerID) {
		return 0, fmt.Errorf("%w: you are not part of this match", ErrNotAuthorized)
	}

	rows, err := s.store.MarkMessagesRead(ctx, matchID, readerID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTransientStorage, err)
	}
	return rows, nil
}

// UnreadCounts счётчики для бейджей, без тел сообщений
func (s *MessageService) UnreadCounts(ctx context.Context, userID uuid.UUID) (*UnreadCounts, error) {
	counts, err := s.store.GetUnreadCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransientStorage, err)
	}

	result := &UnreadCounts{MatchCounts: make(map[uuid.UUID]int64, len(counts))}
	for _, c := range counts {
		result.MatchCounts[c.MatchID] = c.Count
		result.Total += c.Count
	}
	return result, nil
}
