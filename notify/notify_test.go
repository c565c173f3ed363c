package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalbridge/legalbridge-api/config"
)

type mockSNS struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

type mockSendGrid struct {
	sent     []*mail.SGMailV3
	response *rest.Response
	err      error
}

func (m *mockSendGrid) Send(email *mail.SGMailV3) (*rest.Response, error) {
	m.sent = append(m.sent, email)
	return m.response, m.err
}

type recordingDeliverer struct {
	got []Message
}

func (r *recordingDeliverer) Deliver(_ context.Context, msg Message) error {
	r.got = append(r.got, msg)
	return nil
}

var msg = Message{Recipient: "98765 43210", Organisation: "Delhi State Legal Services Authority", Code: "123456", TTL: 10 * time.Minute}

func TestChannelFor(t *testing.T) {
	assert.Equal(t, ChannelEmail, ChannelFor("asha@example.com"))
	assert.Equal(t, ChannelSMS, ChannelFor("9876543210"))
}

func TestRouter(t *testing.T) {
	email, sms := &recordingDeliverer{}, &recordingDeliverer{}
	r := Router{Email: email, SMS: sms}

	require.NoError(t, r.Deliver(context.Background(), Message{Recipient: "a@b.in"}))
	require.NoError(t, r.Deliver(context.Background(), Message{Recipient: "9876543210"}))

	assert.Len(t, email.got, 1)
	assert.Len(t, sms.got, 1)

	err := Router{SMS: sms}.Deliver(context.Background(), Message{Recipient: "a@b.in"})
	assert.ErrorIs(t, err, ErrNoDeliverer)
}

func TestSMSDeliverer(t *testing.T) {
	var input *sns.PublishInput
	d := &SMSDeliverer{Client: &mockSNS{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			input = params
			return &sns.PublishOutput{}, nil
		},
	}}

	require.NoError(t, d.Deliver(context.Background(), msg))

	assert.Equal(t, "+919876543210", *input.PhoneNumber)
	assert.Contains(t, *input.Message, "123456")
	assert.Equal(t, "Transactional", *input.MessageAttributes["AWS.SNS.SMS.SMSType"].StringValue)
}

func TestSMSDelivererFailure(t *testing.T) {
	d := &SMSDeliverer{Client: &mockSNS{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, errors.New("SNS service unavailable")
		},
	}}

	assert.EqualError(t, d.Deliver(context.Background(), msg), "SNS service unavailable")
}

func TestEmailDeliverer(t *testing.T) {
	client := &mockSendGrid{response: &rest.Response{StatusCode: 202}}
	d := &EmailDeliverer{Client: client, From: mail.NewEmail("LegalBridge India", "no-reply@legalbridge.in")}

	require.NoError(t, d.Deliver(context.Background(), Message{Recipient: "asha@example.com", Code: "654321", Organisation: "X", TTL: time.Minute}))

	require.Len(t, client.sent, 1)
	assert.Equal(t, "asha@example.com", client.sent[0].Personalizations[0].To[0].Address)
	assert.Contains(t, client.sent[0].Content[0].Value, "654321")
}

func TestEmailDelivererErrorStatus(t *testing.T) {
	client := &mockSendGrid{response: &rest.Response{StatusCode: 401, Body: "unauthorized"}}
	d := &EmailDeliverer{Client: client, From: mail.NewEmail("", "no-reply@legalbridge.in")}

	err := d.Deliver(context.Background(), Message{Recipient: "asha@example.com"})

	assert.EqualError(t, err, "sendgrid error: status 401")
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"9876543210":       "+919876543210",
		"98765-43210":      "+919876543210",
		"09876543210":      "+919876543210",
		"919876543210":     "+919876543210",
		"+44 20 7946 0958": "+442079460958",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePhone(in), in)
	}
}

func TestNewLogMode(t *testing.T) {
	d, err := New(context.Background(), &config.Config{DeliveryMode: "log"})

	require.NoError(t, err)
	assert.IsType(t, LogDeliverer{}, d)
	assert.NoError(t, d.Deliver(context.Background(), msg))
}
