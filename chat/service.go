// Package chat keeps a visitor's conversation with the legal assistant. Every
// change to the transcript is flushed to the visitor's chat history.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/legalbridge/legalbridge-api/metrics"
	"github.com/legalbridge/legalbridge-api/models"
	"github.com/legalbridge/legalbridge-api/store"
)

// UnavailableMessage replaces the credential error once it has been reported
const UnavailableMessage = "The assistant is unavailable at the moment. You can still generate documents and find legal aid near you."

// Generator produces a reply for a full prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service runs chat sessions for all visitors
type Service struct {
	Generator Generator
	History   *store.Collection[[]models.ChatMessage]

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewService returns a chat service backed by the chat history collection
func NewService(gen Generator, history *store.Collection[[]models.ChatMessage]) *Service {
	return &Service{
		Generator: gen,
		History:   history,
		inFlight:  map[string]struct{}{},
	}
}

// Initialize returns the visitor's transcript, seeding and saving the greeting
// when there is none
func (s *Service) Initialize(ctx context.Context, visitor string) ([]models.ChatMessage, error) {
	transcript, err := s.History.Load(ctx, store.Scope(visitor))
	if err != nil {
		return nil, err
	}
	if len(transcript) > 0 {
		return transcript, nil
	}
	transcript = []models.ChatMessage{{Sender: models.SenderBot, Text: Greeting}}
	if err := s.History.Save(ctx, store.Scope(visitor), transcript); err != nil {
		return nil, err
	}
	return transcript, nil
}

// Send appends the visitor's message and the assistant's reply to the
// transcript and returns it. Whitespace-only text leaves the transcript as it
// is. A visitor has at most one generation in flight; a concurrent call gets
// ErrBusy.
func (s *Service) Send(ctx context.Context, visitor, text string) ([]models.ChatMessage, error) {
	scope := store.Scope(visitor)
	text = strings.TrimSpace(text)
	if text == "" {
		return s.History.Load(ctx, scope)
	}
	if !s.acquire(visitor) {
		return nil, ErrBusy
	}
	defer s.release(visitor)

	// a reply is generated and flushed even when the caller stops waiting
	ctx = context.WithoutCancel(ctx)

	transcript, err := s.Initialize(ctx, visitor)
	if err != nil {
		return nil, err
	}
	firstReply := !hasUserMessage(transcript)

	transcript = append(transcript, models.ChatMessage{Sender: models.SenderUser, Text: text})
	if err := s.History.Save(ctx, scope, transcript); err != nil {
		return nil, err
	}

	reply := s.reply(ctx, transcript, text, firstReply)
	transcript = append(transcript, models.ChatMessage{Sender: models.SenderBot, Text: reply})
	if err := s.History.Save(ctx, scope, transcript); err != nil {
		return nil, err
	}
	return transcript, nil
}

// Clear drops the visitor's transcript; the next Initialize seeds a new one
func (s *Service) Clear(ctx context.Context, visitor string) error {
	return s.History.Save(ctx, store.Scope(visitor), []models.ChatMessage{})
}

func (s *Service) reply(ctx context.Context, transcript []models.ChatMessage, text string, firstReply bool) string {
	var (
		generated string
		err       = ErrCredentialMissing
	)
	if s.Generator != nil {
		start := time.Now()
		generated, err = s.Generator.Generate(ctx, BuildPrompt(text))
		metrics.ChatGenerationDuration.Observe(time.Since(start).Seconds())
	}
	if err == nil {
		metrics.ChatReplies.WithLabelValues("generated").Inc()
		reply := Sanitize(generated)
		if firstReply {
			reply = Disclaimer + reply
		}
		return reply
	}

	metrics.ChatReplies.WithLabelValues(outcome(err)).Inc()
	zap.S().Warnw("chat generation failed", "outcome", outcome(err), "error", err)

	if errors.Is(err, ErrCredentialMissing) && !containsMessage(transcript, CredentialMessage) {
		return CredentialMessage
	}
	if canned, ok := Fallback(text); ok {
		metrics.ChatReplies.WithLabelValues("fallback").Inc()
		return canned
	}
	if errors.Is(err, ErrCredentialMissing) {
		return UnavailableMessage
	}
	return ErrorMessage(err)
}

func (s *Service) acquire(visitor string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[visitor]; busy {
		return false
	}
	s.inFlight[visitor] = struct{}{}
	return true
}

func (s *Service) release(visitor string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, visitor)
}

func hasUserMessage(transcript []models.ChatMessage) bool {
	for _, m := range transcript {
		if m.Sender == models.SenderUser {
			return true
		}
	}
	return false
}

func containsMessage(transcript []models.ChatMessage, text string) bool {
	for _, m := range transcript {
		if m.Sender == models.SenderBot && m.Text == text {
			return true
		}
	}
	return false
}
