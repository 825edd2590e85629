package handlers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ugchub/backend/internal/handlers/dto"
	"github.com/ugchub/backend/internal/services"
	"github.com/ugchub/backend/internal/websocket"
)

const wsOpTimeout = 10 * time.Second

// MessageEventHandler обрабатывает события живого канала. Бизнес-логика
// целиком в MessageService — здесь только разбор payload и ответы.
type MessageEventHandler struct {
	messages *services.MessageService
	hub      *websocket.Hub
}

func NewMessageEventHandler(messages *services.MessageService, hub *websocket.Hub) *MessageEventHandler {
	return &MessageEventHandler{messages: messages, hub: hub}
}

func (h *MessageEventHandler) HandleEvent(client *websocket.Client, event *websocket.Event) error {
	switch event.Type {
	case websocket.TypeSendMessage:
		return h.handleSendMessage(client, event)

	case websocket.TypeMarkRead:
		return h.handleMarkRead(client, event)

	case websocket.TypeTyping:
		return h.handleTyping(client, event)

	default:
		log.Printf("Unknown event type: %s", event.Type)
		return nil
	}
}

func (h *MessageEventHandler) handleSendMessage(client *websocket.Client, event *websocket.Event) error {
	var payload dto.SendMessagePayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return websocket.ErrInvalidEvent
	}

	ctx, cancel := context.WithTimeout(context.Background(), wsOpTimeout)
	defer cancel()

	// Сохранение и пуш получателю внутри сервиса; здесь только ack отправителю
	message, err := h.messages.SendMessage(ctx, payload.MatchID, client.UserID, payload.Content, payload.Type)
	if err != nil {
		return err
	}

	return client.SendEvent(websocket.TypeMessageSent, map[string]interface{}{
		"message_id": message.ID,
		"match_id":   message.MatchID,
	})
}

func (h *MessageEventHandler) handleMarkRead(client *websocket.Client, event *websocket.Event) error {
	var payload dto.MarkReadPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return websocket.ErrInvalidEvent
	}

	ctx, cancel := context.WithTimeout(context.Background(), wsOpTimeout)
	defer cancel()

	if _, err := h.messages.MarkRead(ctx, payload.MatchID, client.UserID); err != nil {
		return err
	}

	// Квитанция уходит только читателю; отправителю read receipt не пушим
	return client.SendEvent(websocket.TypeMarkedRead, dto.MarkReadPayload{MatchID: payload.MatchID})
}

// handleTyping транзитный индикатор, нигде не сохраняется. Если получатель
// офлайн, событие молча пропадает.
func (h *MessageEventHandler) handleTyping(client *websocket.Client, event *websocket.Event) error {
	var payload dto.TypingPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return websocket.ErrInvalidEvent
	}

	h.hub.SendEventToUser(payload.RecipientID, websocket.TypeUserTyping, client.UserID, map[string]interface{}{
		"user_id":   client.UserID,
		"is_typing": payload.IsTyping,
	})

	return nil
}
