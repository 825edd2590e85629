package handlers

import (
	"github.com/ugchub/backend/internal/handlers/dto"
	"github.com/ugchub/backend/internal/models"
	"github.com/ugchub/backend/internal/websocket"
)

// HubDelivery подключает hub к MessageService: каждое сохранённое сообщение
// пушится во все соединения получателя событием new_message
type HubDelivery struct {
	hub *websocket.Hub
}

func NewHubDelivery(hub *websocket.Hub) *HubDelivery {
	return &HubDelivery{hub: hub}
}

func (d *HubDelivery) MessageCreated(message *models.Message) {
	d.hub.SendEventToUser(message.RecipientID, websocket.TypeNewMessage, message.SenderID, dto.NewMessageResponse(message))
}
