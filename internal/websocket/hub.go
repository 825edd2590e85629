package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType типы событий живого канала
type EventType string

const (
	// Системные типы
	TypeConnect    EventType = "connect"
	TypeDisconnect EventType = "disconnect"
	TypePing       EventType = "ping"
	TypePong       EventType = "pong"

	// Клиент -> сервер
	TypeSendMessage EventType = "send_message"
	TypeMarkRead    EventType = "mark_messages_read"
	TypeTyping      EventType = "typing"

	// Сервер -> клиент
	TypeNewMessage  EventType = "new_message"
	TypeMessageSent EventType = "message_sent"
	TypeMarkedRead  EventType = "messages_marked_read"
	TypeUserTyping  EventType = "user_typing"
	TypeError       EventType = "error"

	// Статусы присутствия
	TypeUserOnline  EventType = "user_online"
	TypeUserOffline EventType = "user_offline"
)

type Event struct {
	Type      EventType       `json:"type"`
	UserID    uuid.UUID       `json:"user_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Hub реестр живых соединений. У пользователя один логический inbox,
// но соединений может быть несколько (несколько устройств) — рассылка
// идёт по всем.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Соединения по UserID
	userClients map[uuid.UUID]map[uuid.UUID]*Client

	// Каналы для регистрации/отмены регистрации
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub создает новый Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
		// Первое соединение пользователя
		h.notifyUserStatus(client.UserID, TypeUserOnline)
	}
	h.userClients[client.UserID][client.ID] = client

	log.Printf("Client registered: %s (User: %s)", client.ID, client.UserID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		if userClients, ok := h.userClients[client.UserID]; ok {
			delete(userClients, client.ID)
			if len(userClients) == 0 {
				delete(h.userClients, client.UserID)
				// Последнее соединение пользователя закрыто
				h.notifyUserStatus(client.UserID, TypeUserOffline)
			}
		}

		delete(h.clients, client.ID)
		close(client.Send)

		log.Printf("Client unregistered: %s (User: %s)", client.ID, client.UserID)
	}
}

// SendToUser рассылает сообщение по всем соединениям пользователя.
// Возвращает true, если хотя бы одно живое соединение было.
func (h *Hub) SendToUser(userID uuid.UUID, message []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.userClients[userID]
	if !ok {
		return false
	}

	for _, client := range clients {
		select {
		case client.Send <- message:
		default:
			log.Printf("Client %s send channel full", client.ID)
		}
	}
	return true
}

// SendEventToUser собирает Event и рассылает его по inbox пользователя
func (h *Hub) SendEventToUser(userID uuid.UUID, eventType EventType, from uuid.UUID, data interface{}) bool {
	event := Event{
		Type:      eventType,
		UserID:    from,
		Timestamp: time.Now(),
	}

	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			log.Printf("Failed to marshal %s event: %v", eventType, err)
			return false
		}
		event.Data = jsonData
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return false
	}

	return h.SendToUser(userID, payload)
}

// IsOnline проверяет, есть ли у пользователя живое соединение
func (h *Hub) IsOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.userClients[userID]
	return ok
}

// notifyUserStatus уведомляет о статусе пользователя; вызывается под h.mu
func (h *Hub) notifyUserStatus(userID uuid.UUID, status EventType) {
	event := Event{
		Type:      status,
		UserID:    userID,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(event); err == nil {
		for _, client := range h.clients {
			if client.UserID == userID {
				continue
			}
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event := Event{
		Type:      TypePing,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(event); err == nil {
		for _, client := range h.clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// GetOnlineUsers возвращает список онлайн пользователей
func (h *Hub) GetOnlineUsers() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]uuid.UUID, 0, len(h.userClients))
	for userID := range h.userClients {
		users = append(users, userID)
	}
	return users
}
