package chat

import "errors"

// Generation failures. Generators wrap one of these so the session can pick
// the reply shown to the visitor.
var (
	ErrCredentialMissing = errors.New("generation credential missing")
	ErrQuotaExceeded     = errors.New("generation quota exceeded")
	ErrMalformedResponse = errors.New("malformed generation response")
	ErrTransport         = errors.New("generation service unreachable")
)

// ErrBusy is returned while a visitor already has a generation in flight
var ErrBusy = errors.New("a reply is already being generated")

const apology = "I apologize, but I encountered an issue. "

// Fixed replies for generation failures
const (
	CredentialMessage = "Configuration Error: The API key is missing. Please configure your Gemini API key."
	QuotaMessage      = apology + "The API quota has been exceeded. Please check your Google AI Studio dashboard."
	TransportMessage  = apology + "There seems to be a problem connecting to the service. Please try again in a moment."
	MalformedMessage  = apology + "I received an unexpected response format. Our team has been notified."
	GenericMessage    = apology + "An unexpected error occurred. Please try again."
)

// ErrorMessage maps a generation failure to the text shown in the transcript
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrCredentialMissing):
		return CredentialMessage
	case errors.Is(err, ErrQuotaExceeded):
		return QuotaMessage
	case errors.Is(err, ErrTransport):
		return TransportMessage
	case errors.Is(err, ErrMalformedResponse):
		return MalformedMessage
	default:
		return GenericMessage
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrCredentialMissing):
		return "credential_missing"
	case errors.Is(err, ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	default:
		return "error"
	}
}
