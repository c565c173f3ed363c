package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRules(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"strip-bold":    {"**Section 138** applies", "Section 138 applies"},
		"open-bracket":  {"see [", "see <b>"},
		"close-bracket": {"] done", "</b> done"},
		"trim":          {"  \n reply \t", "reply"},
	}
	for _, r := range Rules {
		tt, ok := tests[r.Name]
		if !assert.True(t, ok, "no case for rule %s", r.Name) {
			continue
		}
		assert.Equal(t, tt.want, r.Apply(tt.in), r.Name)
	}
}

func TestSanitize(t *testing.T) {
	in := "\n**Short answer:** file under [Section 12] of the Act.  \n"
	assert.Equal(t, "Short answer: file under <b>Section 12</b> of the Act.", Sanitize(in))
}

func TestSanitizeLeavesSingleAsterisks(t *testing.T) {
	assert.Equal(t, "* first point", Sanitize("* first point"))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, CredentialMessage, ErrorMessage(ErrCredentialMissing))
	assert.Equal(t, QuotaMessage, ErrorMessage(ErrQuotaExceeded))
	assert.Equal(t, TransportMessage, ErrorMessage(ErrTransport))
	assert.Equal(t, MalformedMessage, ErrorMessage(ErrMalformedResponse))
	assert.Equal(t, GenericMessage, ErrorMessage(assert.AnError))
}

func TestFallback(t *testing.T) {
	tests := []struct {
		text  string
		topic string
	}{
		{"The police station refused to take my complaint", "fir"},
		{"How do I file an FIR?", "fir"},
		{"My son was arrested last night", "bail"},
		{"How to file an RTI?", "rti"},
		{"Boundary wall dispute with neighbour", "property"},
		{"The seller refuses a refund", "consumer"},
		{"My employer has not paid my salary", "employment"},
		{"Mutual consent divorce procedure", "divorce"},
	}
	for _, tt := range tests {
		got, ok := Fallback(tt.text)
		if assert.True(t, ok, tt.text) {
			assert.Equal(t, replyFor(tt.topic), got, tt.text)
		}
	}
}

func TestFallbackMatchesWholeWords(t *testing.T) {
	_, ok := Fallback("Please confirm the firm's address")
	assert.False(t, ok)
}

func replyFor(topic string) string {
	for _, r := range FallbackRules {
		if r.Topic == topic {
			return r.Reply
		}
	}
	return ""
}
