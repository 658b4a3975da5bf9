package notifier

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"

	"github.com/alimahmoud/usdt-orders/internal/order"
)

// Email is a rendered notification ready for dispatch.
type Email struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Sender dispatches a rendered email through a delivery provider.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// ResendSender dispatches emails through the Resend API.
type ResendSender struct {
	client *resend.Client
}

func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey)}
}

func (s *ResendSender) Send(ctx context.Context, email Email) error {
	params := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend dispatch failed: %w", err)
	}
	return nil
}

// Service renders submitted orders into operator notifications and dispatches
// them. It is stateless: each order is rendered and sent exactly once per
// invocation, and a failed dispatch is reported back rather than retried.
type Service struct {
	sender Sender
	inbox  string
	from   string
}

// NewService creates a notifier service delivering to the operator inbox.
func NewService(sender Sender, inbox, from string) *Service {
	return &Service{
		sender: sender,
		inbox:  inbox,
		from:   from,
	}
}

// Notify validates the order record, renders the notification email and
// dispatches it. Every failure path returns an error; none are retried here.
func (s *Service) Notify(ctx context.Context, rec *order.Record) error {
	logger := log.With().
		Str("notification_id", uuid.New().String()).
		Str("service", "notifier").
		Str("direction", string(rec.Identity.TransactionType)).
		Logger()

	if err := rec.Validate(); err != nil {
		logger.Warn().Err(err).Msg("rejecting invalid order record")
		return err
	}

	subject := renderSubject(rec)
	body, err := renderBody(rec)
	if err != nil {
		logger.Error().Err(err).Msg("failed to render order notification")
		return fmt.Errorf("failed to render order notification: %w", err)
	}

	email := Email{
		From:    s.from,
		To:      []string{s.inbox},
		Subject: subject,
		HTML:    body,
	}

	if err := s.sender.Send(ctx, email); err != nil {
		logger.Error().Err(err).Msg("failed to dispatch order notification")
		return err
	}

	logger.Info().
		Str("amount", rec.Amount().String()).
		Str("network", string(rec.Network())).
		Msg("order notification dispatched")

	return nil
}
