package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	templates "github.com/legalbridge/legalbridge-api/templates/html"
)

// EmailSender is the part of the SendGrid client used here
type EmailSender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

// EmailDeliverer sends codes by email through SendGrid
type EmailDeliverer struct {
	Client EmailSender
	From   *mail.Email
}

// NewEmailDeliverer creates a SendGrid backed deliverer
func NewEmailDeliverer(apiKey, from string) *EmailDeliverer {
	return &EmailDeliverer{
		Client: sendgrid.NewSendClient(apiKey),
		From:   mail.NewEmail("LegalBridge India", from),
	}
}

// Deliver sends the code email
func (e *EmailDeliverer) Deliver(_ context.Context, msg Message) error {
	subject := "Your LegalBridge India verification code"
	to := mail.NewEmail("", msg.Recipient)
	plainTextContent := templates.VerificationCodeText(msg.Code, msg.Organisation, msg.TTL)
	htmlContent := templates.RenderVerificationCode(msg.Code, msg.Organisation, msg.TTL)
	message := mail.NewSingleEmail(e.From, subject, to, plainTextContent, htmlContent)

	response, err := e.Client.Send(message)
	if err != nil {
		zap.S().Errorw("failed to send verification email", "email", msg.Recipient, "error", err)
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body, "to", msg.Recipient)
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	zap.S().Infow("verification email sent successfully", "email", msg.Recipient, "statusCode", response.StatusCode)
	return nil
}
