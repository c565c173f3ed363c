package reveal

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/legalbridge/legalbridge-api/databases"
	"github.com/legalbridge/legalbridge-api/metrics"
	"github.com/legalbridge/legalbridge-api/models"
	"github.com/legalbridge/legalbridge-api/notify"
	"github.com/legalbridge/legalbridge-api/store"
)

var (
	ErrUnknownOrganisation = errors.New("unknown organisation")
	ErrMissingDetails      = errors.New("name and contact are required")
	ErrSessionNotFound     = errors.New("reveal session not found")
	ErrCodeMismatch        = errors.New("incorrect code")
	ErrCodeExpired         = errors.New("code expired")
	ErrRateLimited         = errors.New("too many codes requested")
)

// DefaultCodeTTL is how long an issued code stays valid
const DefaultCodeTTL = 10 * time.Minute

const deliveryTimeout = 30 * time.Second

// OrganizationSource looks organisations up by name
type OrganizationSource interface {
	Organization(name string) (models.Organization, bool)
}

// Limiter decides whether a visitor may be issued another code
type Limiter interface {
	Allow(key string) bool
}

// Service runs reveal sessions
type Service struct {
	Orgs        OrganizationSource
	Sessions    databases.PendingVerificationDatabase
	Contacts    databases.ContactDatabase
	Collections *store.Collections
	Notifier    notify.Deliverer
	Limiter     Limiter
	CodeTTL     time.Duration
	HashCost    int

	Now     func() time.Time
	NewID   func() string
	NewCode func() (string, error)

	deliveries sync.WaitGroup
	recordMu   sync.Mutex
}

// NewService wires a reveal service with production defaults
func NewService(orgs OrganizationSource, sessions databases.PendingVerificationDatabase, contacts databases.ContactDatabase, collections *store.Collections, notifier notify.Deliverer, limiter Limiter, codeTTL time.Duration) *Service {
	if codeTTL <= 0 {
		codeTTL = DefaultCodeTTL
	}
	return &Service{
		Orgs:        orgs,
		Sessions:    sessions,
		Contacts:    contacts,
		Collections: collections,
		Notifier:    notifier,
		Limiter:     limiter,
		CodeTTL:     codeTTL,
		HashCost:    bcrypt.DefaultCost,
		Now:         time.Now,
		NewID:       uuid.NewString,
		NewCode:     GenerateCode,
	}
}

// GenerateCode returns a uniformly random 6-digit code
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Start opens a session for an organisation in CollectingDetails
func (s *Service) Start(ctx context.Context, visitor, organisation string) (*models.PendingVerification, error) {
	if _, ok := s.Orgs.Organization(organisation); !ok {
		return nil, ErrUnknownOrganisation
	}
	state, err := Next(Idle, EventStart)
	if err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	session := models.PendingVerification{
		ID:           s.NewID(),
		VisitorID:    visitor,
		Organisation: organisation,
		State:        string(state),
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.CodeTTL),
	}
	if err := s.Sessions.InsertOne(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create reveal session: %w", err)
	}
	return &session, nil
}

// SubmitDetails records the visitor's name and contact, issues a code and
// delivers it out of band. The code is never returned.
func (s *Service) SubmitDetails(ctx context.Context, visitor, sessionID, name, contact string) (*models.PendingVerification, error) {
	session, err := s.session(ctx, visitor, sessionID)
	if err != nil {
		return nil, err
	}
	state, err := Next(State(session.State), EventSubmitDetails)
	if err != nil {
		return nil, err
	}

	name, contact = strings.TrimSpace(name), strings.TrimSpace(contact)
	if name == "" || contact == "" {
		return nil, ErrMissingDetails
	}
	if s.Limiter != nil && !s.Limiter.Allow(visitor) {
		return nil, ErrRateLimited
	}

	code, err := s.NewCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.HashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash code: %w", err)
	}

	session.Name = name
	session.Contact = contact
	session.Channel = notify.ChannelFor(contact)
	session.CodeHash = string(hash)
	session.Attempts = 0
	session.State = string(state)
	session.ExpiresAt = s.Now().UTC().Add(s.CodeTTL)
	if err := s.Sessions.ReplaceOne(ctx, *session); err != nil {
		return nil, fmt.Errorf("failed to update reveal session: %w", err)
	}
	metrics.CodesIssued.Inc()

	s.deliver(notify.Message{
		Recipient:    contact,
		Organisation: session.Organisation,
		Code:         code,
		TTL:          s.CodeTTL,
	}, session.Channel)
	return session, nil
}

// deliver sends the code in the background so a slow provider never blocks
// the request
func (s *Service) deliver(msg notify.Message, channel string) {
	s.deliveries.Add(1)
	go func() {
		defer s.deliveries.Done()
		defer func() {
			if r := recover(); r != nil {
				zap.S().Errorw("panic in code delivery", "channel", channel, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()
		if err := s.Notifier.Deliver(ctx, msg); err != nil {
			metrics.CodeDeliveryFailures.WithLabelValues(channel).Inc()
			zap.S().Errorw("failed to deliver verification code", "channel", channel, "error", err)
		}
	}()
}

// Wait blocks until every background delivery has finished
func (s *Service) Wait() {
	s.deliveries.Wait()
}

// Confirm checks a code. A mismatch counts an attempt and changes nothing
// else; a match updates the visitor's collections and returns the revealed
// organisation.
func (s *Service) Confirm(ctx context.Context, visitor, sessionID, code string) (models.Organization, error) {
	session, err := s.session(ctx, visitor, sessionID)
	if err != nil {
		return models.Organization{}, err
	}
	if State(session.State) != AwaitingCode {
		_, err := Next(State(session.State), EventCodeMatched)
		return models.Organization{}, err
	}
	if s.Now().After(session.ExpiresAt) {
		return models.Organization{}, ErrCodeExpired
	}

	if bcrypt.CompareHashAndPassword([]byte(session.CodeHash), []byte(strings.TrimSpace(code))) != nil {
		metrics.CodeAttempts.WithLabelValues("mismatch").Inc()
		if err := s.Sessions.IncrementAttempts(ctx, session.ID); err != nil {
			zap.S().Errorw("failed to count code attempt", "session", session.ID, "error", err)
		}
		return models.Organization{}, ErrCodeMismatch
	}
	metrics.CodeAttempts.WithLabelValues("match").Inc()

	org, ok := s.Orgs.Organization(session.Organisation)
	if !ok {
		return models.Organization{}, ErrUnknownOrganisation
	}

	// only the confirm that moves the session out of AwaitingCode records it
	claimed, err := s.Sessions.Transition(ctx, session.ID, string(AwaitingCode), string(Revealed))
	if err != nil {
		return models.Organization{}, fmt.Errorf("failed to update reveal session: %w", err)
	}
	if !claimed {
		_, err := Next(Revealed, EventCodeMatched)
		return models.Organization{}, err
	}

	event := models.ContactEvent{
		Organisation: session.Organisation,
		Name:         session.Name,
		Phone:        session.Contact,
		Timestamp:    s.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := s.record(ctx, store.Scope(visitor), event); err != nil {
		if _, rbErr := s.Sessions.Transition(ctx, session.ID, string(Revealed), string(AwaitingCode)); rbErr != nil {
			zap.S().Errorw("failed to reopen reveal session", "session", session.ID, "error", rbErr)
		}
		return models.Organization{}, err
	}

	if _, err := s.Contacts.InsertOne(ctx, models.Contact{
		Organisation: event.Organisation,
		Name:         event.Name,
		Phone:        event.Phone,
		Timestamp:    event.Timestamp,
	}); err != nil {
		zap.S().Errorw("failed to record contact", "organisation", event.Organisation, "error", err)
	}
	return org, nil
}

// record applies a confirmed reveal to the visitor's collections
func (s *Service) record(ctx context.Context, scope store.Scope, event models.ContactEvent) error {
	s.recordMu.Lock()
	defer s.recordMu.Unlock()

	counts, err := s.Collections.ContactCounts.Load(ctx, scope)
	if err != nil {
		return err
	}
	counts[event.Organisation]++
	if err := s.Collections.ContactCounts.Save(ctx, scope, counts); err != nil {
		return err
	}

	log, err := s.Collections.ContactLog.Load(ctx, scope)
	if err != nil {
		return err
	}
	if err := s.Collections.ContactLog.Save(ctx, scope, append(log, event)); err != nil {
		return err
	}

	revealed, err := s.Collections.Revealed.Load(ctx, scope)
	if err != nil {
		return err
	}
	revealed[event.Organisation] = true
	return s.Collections.Revealed.Save(ctx, scope, revealed)
}

// Cancel drops a session without touching any collection
func (s *Service) Cancel(ctx context.Context, visitor, sessionID string) error {
	session, err := s.session(ctx, visitor, sessionID)
	if err != nil {
		return err
	}
	if _, err := Next(State(session.State), EventCancel); err != nil {
		return err
	}
	return s.Sessions.DeleteOne(ctx, session.ID)
}

// Get returns a session owned by visitor
func (s *Service) Get(ctx context.Context, visitor, sessionID string) (*models.PendingVerification, error) {
	return s.session(ctx, visitor, sessionID)
}

// PurgeExpired removes sessions whose expiry has passed
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.Sessions.DeleteExpired(ctx, s.Now().UTC())
	if err != nil {
		return 0, err
	}
	metrics.ExpiredSessionsPurged.Add(float64(n))
	return n, nil
}

func (s *Service) session(ctx context.Context, visitor, sessionID string) (*models.PendingVerification, error) {
	session, err := s.Sessions.FindOne(ctx, sessionID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load reveal session: %w", err)
	}
	if session.VisitorID != visitor {
		return nil, ErrSessionNotFound
	}
	return session, nil
}
