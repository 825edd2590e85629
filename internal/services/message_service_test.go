package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ugchub/backend/internal/models"
)

type fakeDelivery struct {
	mu     sync.Mutex
	pushed []*models.Message
}

func (d *fakeDelivery) MessageCreated(message *models.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pushed = append(d.pushed, message)
}

func (d *fakeDelivery) pushedTo(userID uuid.UUID) []*models.Message {
	d.mu.Lock()
	defer d.mu.Unlock()

	var result []*models.Message
	for _, m := range d.pushed {
		if m.RecipientID == userID {
			result = append(result, m)
		}
	}
	return result
}

type fakeNotifier struct {
	calls chan uuid.UUID // recipient каждого уведомления
	err   error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{calls: make(chan uuid.UUID, 16)}
}

func (n *fakeNotifier) NotifyNewMessage(_ context.Context, recipientID, _ uuid.UUID, _ string) error {
	n.calls <- recipientID
	return n.err
}

func newMessageFixture(t *testing.T, status models.MatchStatus) (*fakeStore, *MessageService, *fakeDelivery, *fakeNotifier, *models.Match) {
	t.Helper()

	store := newFakeStore()
	creator := store.addUser(models.RoleCreator)
	brand := store.addUser(models.RoleBrand)

	match := &models.Match{CreatorID: creator.ID, BrandID: brand.ID, Status: status}
	require.NoError(t, store.CreateMatch(context.Background(), match))

	delivery := &fakeDelivery{}
	notifier := newFakeNotifier()
	svc := NewMessageService(store, delivery, notifier)

	return store, svc, delivery, notifier, match
}

func TestSendMessageDerivesRecipient(t *testing.T) {
	ctx := context.Background()
	_, svc, _, _, match := newMessageFixture(t, models.MatchAccepted)

	fromBrand, err := svc.SendMessage(ctx, match.ID, match.BrandID, "hi", "")
	require.NoError(t, err)
	assert.Equal(t, match.CreatorID, fromBrand.RecipientID)
	assert.Equal(t, "text", fromBrand.Type)
	assert.False(t, fromBrand.IsRead)
	assert.NotEqual(t, uuid.Nil, fromBrand.ID)
	assert.False(t, fromBrand.CreatedAt.IsZero())

	fromCreator, err := svc.SendMessage(ctx, match.ID, match.CreatorID, "hello", "text")
	require.NoError(t, err)
	assert.Equal(t, match.BrandID, fromCreator.RecipientID)
}

func TestSendMessageValidation(t *testing.T) {
	ctx := context.Background()
	store, svc, _, _, match := newMessageFixture(t, models.MatchAccepted)

	tests := []struct {
		name    string
		content string
		msgType string
		wantErr error
	}{
		{"empty content", "", "text", ErrEmptyContent},
		{"blank content", "   \n ", "text", ErrEmptyContent},
		{"too long", strings.Repeat("a", models.MaxMessageLength+1), "text", ErrMessageTooLong},
		{"unknown type", "hi", "carrier-pigeon", ErrInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SendMessage(ctx, match.ID, match.BrandID, tt.content, tt.msgType)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Ровно 1000 символов проходит
	_, err := svc.SendMessage(ctx, match.ID, match.BrandID, strings.Repeat("б", models.MaxMessageLength), "text")
	assert.NoError(t, err)

	assert.Equal(t, 1, store.messageCount())
}

func TestSendMessageRequiresActiveMatch(t *testing.T) {
	ctx := context.Background()

	for _, status := range []models.MatchStatus{models.MatchPending, models.MatchRejected} {
		t.Run(string(status), func(t *testing.T) {
			store, svc, _, _, match := newMessageFixture(t, status)

			_, err := svc.SendMessage(ctx, match.ID, match.BrandID, "hi", "")
			assert.ErrorIs(t, err, ErrMatchNotActive)
			assert.Equal(t, 0, store.messageCount())
		})
	}

	// Завершённый матч остаётся открытым для переписки
	_, svc, _, _, match := newMessageFixture(t, models.MatchCompleted)
	_, err := svc.SendMessage(ctx, match.ID, match.BrandID, "thanks for the delivery", "")
	assert.NoError(t, err)
}

func TestSendMessageNonParticipant(t *testing.T) {
	ctx := context.Background()
	store, svc, _, _, match := newMessageFixture(t, models.MatchAccepted)
	outsider := store.addUser(models.RoleBrand)

	_, err := svc.SendMessage(ctx, match.ID, outsider.ID, "hi", "")
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Equal(t, 0, store.messageCount())
}

func TestSendMessageUnknownMatch(t *testing.T) {
	ctx := context.Background()
	_, svc, _, _, match := newMessageFixture(t, models.MatchAccepted)

	_, err := svc.SendMessage(ctx, uuid.New(), match.BrandID, "hi", "")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestSendMessagePersistsBeforePush(t *testing.T) {
	ctx := context.Background()
	store, svc, delivery, _, match := newMessageFixture(t, models.MatchAccepted)

	// Сбой хранилища: сообщение не пушится вовсе
	store.saveMessageErr = errors.New("connection reset")
	_, err := svc.SendMessage(ctx, match.ID, match.BrandID, "hi", "")
	assert.ErrorIs(t, err, ErrTransientStorage)
	assert.Empty(t, delivery.pushedTo(match.CreatorID))

	store.saveMessageErr = nil
	msg, err := svc.SendMessage(ctx, match.ID, match.BrandID, "hi again", "")
	require.NoError(t, err)

	pushed := delivery.pushedTo(match.CreatorID)
	require.Len(t, pushed, 1)
	assert.Equal(t, msg.ID, pushed[0].ID)
}

func TestSendMessagePushOrderMatchesPersistenceOrder(t *testing.T) {
	ctx := context.Background()
	store, svc, delivery, _, match := newMessageFixture(t, models.MatchAccepted)

	m1, err := svc.SendMessage(ctx, match.ID, match.BrandID, "first", "")
	require.NoError(t, err)
	m2, err := svc.SendMessage(ctx, match.ID, match.BrandID, "second", "")
	require.NoError(t, err)

	stored, err := store.GetMatchMessages(ctx, match.ID, 0, nil)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, m1.ID, stored[0].ID)
	assert.Equal(t, m2.ID, stored[1].ID)

	pushed := delivery.pushedTo(match.CreatorID)
	require.Len(t, pushed, 2)
	assert.Equal(t, m1.ID, pushed[0].ID)
	assert.Equal(t, m2.ID, pushed[1].ID)
}

func TestSendMessageNotifiesRecipient(t *testing.T) {
	ctx := context.Background()
	_, svc, _, notifier, match := newMessageFixture(t, models.MatchAccepted)

	_, err := svc.SendMessage(ctx, match.ID, match.BrandID, "hi", "")
	require.NoError(t, err)

	select {
	case recipient := <-notifier.calls:
		assert.Equal(t, match.CreatorID, recipient)
	case <-time.After(time.Second):
		t.Fatal("notification was never dispatched")
	}
}

func TestSendMessageSurvivesNotifierFailure(t *testing.T) {
	ctx := context.Background()
	store, svc, _, notifier, match := newMessageFixture(t, models.MatchAccepted)
	notifier.err = errors.New("smtp down")

	_, err := svc.SendMessage(ctx, match.ID, match.BrandID, "hi", "")
	require.NoError(t, err)
	assert.Equal(t, 1, store.messageCount())
}

func TestMarkReadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	_, svc, _, _, match := newMessageFixture(t, models.MatchAccepted)

	_, err := svc.SendMessage(ctx, match.ID, match.BrandID, "one", "")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, match.ID, match.BrandID, "two", "")
	require.NoError(t, err)

	rows, err := svc.MarkRead(ctx, match.ID, match.CreatorID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)

	counts, err := svc.UnreadCounts(ctx, match.CreatorID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.Total)

	// Повторный вызов ничего не меняет
	rows, err = svc.MarkRead(ctx, match.ID, match.CreatorID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestMarkReadOnlyTouchesReader(t *testing.T) {
	ctx := context.Background()
	_, svc, _, _, match := newMessageFixture(t, models.MatchAccepted)

	// По сообщению в каждую сторону
	_, err := svc.SendMessage(ctx, match.ID, match.BrandID, "to creator", "")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, match.ID, match.CreatorID, "to brand", "")
	require.NoError(t, err)

	_, err = svc.MarkRead(ctx, match.ID, match.CreatorID)
	require.NoError(t, err)

	brandCounts, err := svc.UnreadCounts(ctx, match.BrandID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), brandCounts.Total)
}

func TestUnreadCountsPerMatch(t *testing.T) {
	ctx := context.Background()
	store, svc, _, _, match := newMessageFixture(t, models.MatchAccepted)

	// Второй матч того же криейтора с другим брендом
	otherBrand := store.addUser(models.RoleBrand)
	second := &models.Match{CreatorID: match.CreatorID, BrandID: otherBrand.ID, Status: models.MatchAccepted}
	require.NoError(t, store.CreateMatch(ctx, second))

	_, err := svc.SendMessage(ctx, match.ID, match.BrandID, "one", "")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, match.ID, match.BrandID, "two", "")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, second.ID, otherBrand.ID, "three", "")
	require.NoError(t, err)

	counts, err := svc.UnreadCounts(ctx, match.CreatorID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Total)
	assert.Equal(t, int64(2), counts.MatchCounts[match.ID])
	assert.Equal(t, int64(1), counts.MatchCounts[second.ID])
}

func TestMessagesForMatchOrderAndAccess(t *testing.T) {
	ctx := context.Background()
	store, svc, _, _, match := newMessageFixture(t, models.MatchAccepted)

	for _, content := range []string{"a", "b", "c"} {
		_, err := svc.SendMessage(ctx, match.ID, match.BrandID, content, "")
		require.NoError(t, err)
	}

	messages, err := svc.MessagesForMatch(ctx, match.ID, match.CreatorID, 0, nil)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "a", messages[0].Content)
	assert.Equal(t, "c", messages[2].Content)

	outsider := store.addUser(models.RoleCreator)
	_, err = svc.MessagesForMatch(ctx, match.ID, outsider.ID, 0, nil)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}
