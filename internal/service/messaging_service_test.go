package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gollllden/Done/internal/dto"
	"github.com/gollllden/Done/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMessaging(t *testing.T, sender notify.EmailSender) MessagingService {
	t.Helper()
	tpl, err := notify.NewTemplates("Golden Touch")
	require.NoError(t, err)
	return NewMessagingService(sender, tpl, "owner@example.com", nil, zap.NewNop())
}

func TestSendMessage_Success(t *testing.T) {
	sender := &mockSender{}
	svc := newTestMessaging(t, sender)

	err := svc.SendMessage(context.Background(), dto.SendMessageRequest{
		ToEmail:    "kofi@example.com",
		ToName:     "Kofi",
		Subject:    "Your booking",
		Message:    "See you Monday",
		CustomerID: "GT-ABC123",
	})

	require.NoError(t, err)
	sent := sender.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "kofi@example.com", sent[0].To)
	assert.Equal(t, "Your booking", sent[0].Subject)
}

func TestSendMessage_SenderError(t *testing.T) {
	svc := newTestMessaging(t, &mockSender{err: errors.New("sendgrid: 401")})

	err := svc.SendMessage(context.Background(), dto.SendMessageRequest{
		ToEmail: "kofi@example.com", Subject: "s", Message: "m",
	})

	assert.ErrorIs(t, err, ErrEmailFailed)
}

func TestSubmitContact_SendsInBackground(t *testing.T) {
	sender := &mockSender{}
	svc := newTestMessaging(t, sender)

	err := svc.SubmitContact(context.Background(), dto.ContactRequest{
		Name: "Yaw", Email: "yaw@example.com", Subject: "Quote", Message: "Office",
	})
	require.NoError(t, err)
	svc.Wait()

	sent := sender.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "owner@example.com", sent[0].To)
	assert.Equal(t, "New website inquiry from Yaw: Quote", sent[0].Subject)
}

func TestSubmitContact_SendFailureNotReturned(t *testing.T) {
	svc := newTestMessaging(t, &mockSender{err: errors.New("down")})

	err := svc.SubmitContact(context.Background(), dto.ContactRequest{
		Name: "Yaw", Email: "yaw@example.com", Subject: "Quote", Message: "Office",
	})
	svc.Wait()

	assert.NoError(t, err)
}
