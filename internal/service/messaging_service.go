package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gollllden/Done/internal/dto"
	"github.com/gollllden/Done/internal/metrics"
	"github.com/gollllden/Done/internal/notify"
	"go.uber.org/zap"
)

var ErrEmailFailed = errors.New("failed to send email")

const contactSendTimeout = 30 * time.Second

type MessagingService interface {
	SendMessage(ctx context.Context, req dto.SendMessageRequest) error
	SubmitContact(ctx context.Context, req dto.ContactRequest) error
	Wait()
}

type messagingService struct {
	sender        notify.EmailSender
	templates     *notify.Templates
	businessEmail string
	metrics       *metrics.Metrics
	log           *zap.Logger

	wg sync.WaitGroup
}

func NewMessagingService(
	sender notify.EmailSender,
	templates *notify.Templates,
	businessEmail string,
	m *metrics.Metrics,
	log *zap.Logger,
) MessagingService {
	return &messagingService{
		sender:        sender,
		templates:     templates,
		businessEmail: businessEmail,
		metrics:       m,
		log:           log,
	}
}

// SendMessage delivers an admin-composed email synchronously.
func (s *messagingService) SendMessage(ctx context.Context, req dto.SendMessageRequest) error {
	msg, err := s.templates.AdminMessage(req.ToEmail, req.ToName, req.Subject, req.Message, req.CustomerID)
	if err != nil {
		return fmt.Errorf("render message: %w", err)
	}

	err = s.sender.Send(ctx, msg)
	s.metrics.ObserveEmail("message", err)
	if err != nil {
		s.log.Error("send admin message failed", zap.String("to", req.ToEmail), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrEmailFailed, err)
	}
	s.log.Info("admin message sent", zap.String("to", req.ToEmail), zap.String("customer_id", req.CustomerID))
	return nil
}

// SubmitContact renders the inquiry and sends it to the business address in
// the background. Only rendering errors reach the caller.
func (s *messagingService) SubmitContact(ctx context.Context, req dto.ContactRequest) error {
	msg, err := s.templates.Contact(notify.ContactForm{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}, s.businessEmail)
	if err != nil {
		return fmt.Errorf("render contact: %w", err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), contactSendTimeout)
		defer cancel()

		err := s.sender.Send(sendCtx, msg)
		s.metrics.ObserveEmail("contact", err)
		if err != nil {
			s.log.Error("send contact email failed", zap.String("from", req.Email), zap.Error(err))
			return
		}
		s.log.Info("contact email sent", zap.String("from", req.Email))
	}()
	return nil
}

// Wait blocks until queued contact emails have been attempted.
func (s *messagingService) Wait() {
	s.wg.Wait()
}
