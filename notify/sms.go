package notify

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.uber.org/zap"

	templates "github.com/legalbridge/legalbridge-api/templates/html"
)

// SNSPublisher is the part of the SNS client used here
type SNSPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SMSDeliverer sends codes by SMS through AWS SNS
type SMSDeliverer struct {
	Client SNSPublisher
}

// NewSMSDeliverer loads the default aws config for region
func NewSMSDeliverer(ctx context.Context, region string) (*SMSDeliverer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SMSDeliverer{Client: sns.NewFromConfig(cfg)}, nil
}

// Deliver publishes the code as a transactional SMS
func (s *SMSDeliverer) Deliver(ctx context.Context, msg Message) error {
	phone := NormalizePhone(msg.Recipient)
	_, err := s.Client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(templates.VerificationCodeText(msg.Code, msg.Organisation, msg.TTL)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {DataType: aws.String("String"), StringValue: aws.String("Transactional")},
		},
	})
	if err != nil {
		zap.S().Errorw("failed to send verification sms", "phone", phone, "error", err)
		return err
	}
	zap.S().Infow("verification sms sent successfully", "phone", phone)
	return nil
}

// NormalizePhone converts an Indian phone number to E.164. Numbers already
// carrying a country code are returned without separators.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		if (r == '+' && i == 0) || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case strings.HasPrefix(digits, "+"):
		return digits
	case len(digits) == 10:
		return "+91" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		return "+91" + digits[1:]
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return "+" + digits
	}
	return digits
}
