package session

import (
	"sync"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/dilzzzz/bagdag/internal/model/persona"
)

// Conversation is the long-lived, persona-scoped handle through which a
// coaching dialogue keeps its context. It accumulates the message history
// the model is replayed on every turn.
type Conversation struct {
	ID      string
	Persona persona.Persona

	mu      sync.Mutex
	history []*schema.Message
}

// History returns a copy of the accumulated exchange history.
func (c *Conversation) History() []*schema.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := make([]*schema.Message, len(c.history))
	copy(copied, c.history)
	return copied
}

// AppendExchange records one completed user/assistant exchange so following
// turns see it as context.
func (c *Conversation) AppendExchange(userText, assistantText string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history,
		schema.UserMessage(userText),
		schema.AssistantMessage(assistantText, nil),
	)
}

// Registry maps each persona to exactly one Conversation, created lazily on
// first access and returned unchanged on every access after that. There is
// no eviction and no reset: a conversation lives for the process lifetime,
// which is what lets context accumulate across UI navigations.
type Registry struct {
	mu    sync.Mutex
	convs map[string]*Conversation
}

// NewRegistry returns an empty registry. The composition root owns it and
// hands it to the orchestrators, so tests can isolate state with a fresh one.
func NewRegistry() *Registry {
	return &Registry{convs: make(map[string]*Conversation)}
}

// GetOrCreate returns the persona's conversation, creating it on first use.
// Repeated calls for the same persona are side-effect-free.
func (r *Registry) GetOrCreate(p persona.Persona) *Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()

	if conv, ok := r.convs[p.ID]; ok {
		return conv
	}

	conv := &Conversation{
		ID:      uuid.NewString(),
		Persona: p,
	}
	r.convs[p.ID] = conv
	return conv
}

// Len reports how many conversations exist, for tests and diagnostics.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.convs)
}
