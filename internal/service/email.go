package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

var ErrEmailNotConfigured = errors.New("email service not configured (missing RESEND_API_KEY)")

type EmailService struct {
	client       *resend.Client
	fromEmail    string
	supportEmail string
	isDev        bool
	appURL       string
	appName      string
	codeExpiry   string
}

func NewEmailService(apiKey, fromEmail, supportEmail, appURL, appName, codeExpiry string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:       client,
		fromEmail:    fromEmail,
		supportEmail: supportEmail,
		isDev:        isDev,
		appURL:       appURL,
		appName:      appName,
		codeExpiry:   codeExpiry,
	}
}

// SendLoginCode delivers a one-time sign-in code. In development the code is only logged.
func (s *EmailService) SendLoginCode(ctx context.Context, email, code string) error {
	subject, body := loginCodeEmailTemplate(code, s.codeExpiry, s.appURL, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "login_code", "to", email, "subject", subject, "code", code)
		return nil
	}

	return s.send(ctx, "login_code", &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	})
}

// ContactMessage is a submission of the public contact form
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// SendContactMessage forwards a contact form submission to the support inbox,
// with Reply-To set to the visitor
func (s *EmailService) SendContactMessage(ctx context.Context, msg ContactMessage) error {
	subject, body := contactMessageEmailTemplate(msg, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "contact", "to", s.supportEmail, "from", msg.Email, "subject", subject)
		return nil
	}

	return s.send(ctx, "contact", &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{s.supportEmail},
		ReplyTo: msg.Email,
		Subject: subject,
		Text:    body,
	})
}

func (s *EmailService) send(ctx context.Context, kind string, params *resend.SendEmailRequest) error {
	if s.client == nil {
		return ErrEmailNotConfigured
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	slog.Info("email sent", "type", kind, "to", params.To)
	return nil
}
