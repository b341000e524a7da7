package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	chatmodel "github.com/dilzzzz/bagdag/internal/model/chat"
	"github.com/dilzzzz/bagdag/internal/model/persona"
	"github.com/dilzzzz/bagdag/internal/service/session"
)

var (
	ErrPersonaRequired = errors.New("persona id is required")
	ErrSessionNotFound = errors.New("session not found")
)

// Service owns the in-memory chat sessions. Each session pairs a transcript
// with its orchestrator; the conversation handles behind them are shared
// through the persona registry so context survives across sessions of the
// same persona.
type Service struct {
	registry *session.Registry
	provider Provider

	mu       sync.RWMutex
	sessions map[string]*entry
}

type entry struct {
	session chatmodel.Session
	orch    *Orchestrator
}

// NewService bootstraps the chat service. provider may be nil when the AI
// backend is not configured; submissions then resolve to the fallback turn.
func NewService(registry *session.Registry, provider Provider) *Service {
	return &Service{
		registry: registry,
		provider: provider,
		sessions: make(map[string]*entry),
	}
}

// CreateSession provisions a session bound to a persona, with a transcript
// seeded by the persona's greeting.
func (s *Service) CreateSession(_ context.Context, p persona.Persona) (chatmodel.Session, error) {
	if p.ID == "" {
		return chatmodel.Session{}, ErrPersonaRequired
	}

	sess := chatmodel.Session{
		ID:        uuid.NewString(),
		PersonaID: p.ID,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = &entry{
		session: sess,
		orch:    NewOrchestrator(p, s.registry, s.provider),
	}
	s.mu.Unlock()

	return sess, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chatmodel.Session, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return chatmodel.Session{}, err
	}
	return e.session, nil
}

// Submit forwards a user turn to the session's orchestrator.
func (s *Service) Submit(ctx context.Context, sessionID, text string, onDelta func(string)) error {
	e, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	return e.orch.Submit(ctx, text, onDelta)
}

// StageAttachment stores an image for the session's next submission.
func (s *Service) StageAttachment(sessionID string, att *chatmodel.Attachment) error {
	e, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	return e.orch.StageAttachment(att)
}

// ClearAttachment removes the session's staged image, if any.
func (s *Service) ClearAttachment(sessionID string) error {
	e, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	e.orch.ClearAttachment()
	return nil
}

// Transcript returns a snapshot of the session's turns plus its busy flag.
func (s *Service) Transcript(sessionID string) ([]chatmodel.Turn, bool, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return nil, false, err
	}
	return e.orch.Transcript(), e.orch.Busy(), nil
}

func (s *Service) lookup(sessionID string) (*entry, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}
