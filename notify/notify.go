// Package notify delivers contact reveal codes out of band, by email through
// SendGrid or by SMS through AWS SNS.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/legalbridge/legalbridge-api/config"
)

// Delivery channels
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// ErrNoDeliverer is returned when no deliverer is configured for a channel
var ErrNoDeliverer = errors.New("no deliverer for channel")

// Message is one code to deliver
type Message struct {
	Recipient    string
	Organisation string
	Code         string
	TTL          time.Duration
}

// Deliverer sends a code to its recipient
type Deliverer interface {
	Deliver(ctx context.Context, msg Message) error
}

// ChannelFor picks the channel for a contact: email addresses contain an @
func ChannelFor(contact string) string {
	if strings.Contains(contact, "@") {
		return ChannelEmail
	}
	return ChannelSMS
}

// Router sends each message over the channel matching its recipient
type Router struct {
	Email Deliverer
	SMS   Deliverer
}

// Deliver routes msg to the email or sms deliverer
func (r Router) Deliver(ctx context.Context, msg Message) error {
	var d Deliverer
	channel := ChannelFor(msg.Recipient)
	switch channel {
	case ChannelEmail:
		d = r.Email
	case ChannelSMS:
		d = r.SMS
	}
	if d == nil {
		return fmt.Errorf("%w: %s", ErrNoDeliverer, channel)
	}
	return d.Deliver(ctx, msg)
}

// LogDeliverer writes codes to the log instead of sending them. Only meant for
// local development.
type LogDeliverer struct{}

// Deliver logs the code
func (LogDeliverer) Deliver(_ context.Context, msg Message) error {
	zap.S().Infow("verification code issued",
		"recipient", msg.Recipient,
		"organisation", msg.Organisation,
		"code", msg.Code,
	)
	return nil
}

// New builds the deliverer selected by DELIVERY_MODE
func New(ctx context.Context, conf *config.Config) (Deliverer, error) {
	if conf.DeliveryMode == "log" {
		zap.S().Warn("verification codes are written to the log, do not use in production")
		return LogDeliverer{}, nil
	}

	r := Router{}
	if conf.SendgridAPIKey != "" {
		r.Email = NewEmailDeliverer(conf.SendgridAPIKey, conf.SendgridFrom)
	} else {
		zap.S().Warn("SENDGRID_API_KEY not set, email codes cannot be delivered")
	}

	sms, err := NewSMSDeliverer(ctx, conf.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	r.SMS = sms
	return r, nil
}
