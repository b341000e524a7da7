package chat

import (
	"errors"
	"sync"
)

var (
	ErrNotStreaming     = errors.New("no assistant turn is being streamed")
	ErrAlreadyStreaming = errors.New("an assistant turn is already being streamed")
	ErrTextShrank       = errors.New("streamed assistant text may only grow")
)

// Transcript is the ordered record of a conversation. Turns are append-only
// with one exception: while a streamed assistant reply is in flight, the last
// turn's text may be overwritten in place. Begin/Extend then Finalize or
// Abort model that window explicitly; outside it every turn is immutable.
type Transcript struct {
	mu        sync.Mutex
	turns     []Turn
	streaming bool
}

// NewTranscript seeds a transcript with the persona's greeting as the first
// assistant turn, mirroring what the user sees when a chat opens.
func NewTranscript(greeting string) *Transcript {
	t := &Transcript{turns: make([]Turn, 0, 16)}
	if greeting != "" {
		t.turns = append(t.turns, Turn{Author: AuthorAssistant, Text: greeting})
	}
	return t
}

// AppendUser records a user turn. The attachment, if any, is referenced
// as-is and must not be modified by the caller afterwards.
func (t *Transcript) AppendUser(text string, att *Attachment) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = append(t.turns, Turn{Author: AuthorUser, Text: text, Attachment: att})
}

// AppendAssistant records a complete, already-final assistant turn.
func (t *Transcript) AppendAssistant(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = append(t.turns, Turn{Author: AuthorAssistant, Text: text})
}

// BeginAssistant appends an empty assistant turn and opens the streaming
// window targeting it. Only one window may be open at a time.
func (t *Transcript) BeginAssistant() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.streaming {
		return ErrAlreadyStreaming
	}
	t.turns = append(t.turns, Turn{Author: AuthorAssistant})
	t.streaming = true
	return nil
}

// ExtendLast overwrites the in-flight assistant turn's text with the
// accumulator's current value. The visible text grows monotonically; a
// shorter value is rejected.
func (t *Transcript) ExtendLast(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.streaming {
		return ErrNotStreaming
	}
	last := &t.turns[len(t.turns)-1]
	if len(text) < len(last.Text) {
		return ErrTextShrank
	}
	last.Text = text
	return nil
}

// FinalizeLast closes the streaming window; the assistant turn keeps its
// accumulated text and becomes immutable.
func (t *Transcript) FinalizeLast() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.streaming {
		return ErrNotStreaming
	}
	t.streaming = false
	return nil
}

// AbortLast closes the streaming window, replacing whatever partial content
// had accumulated with the supplied terminal text.
func (t *Transcript) AbortLast(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.streaming {
		return ErrNotStreaming
	}
	t.turns[len(t.turns)-1].Text = text
	t.streaming = false
	return nil
}

// Turns returns a copy of the transcript in conversational order.
func (t *Transcript) Turns() []Turn {
	t.mu.Lock()
	defer t.mu.Unlock()
	copied := make([]Turn, len(t.turns))
	copy(copied, t.turns)
	return copied
}

// Last returns the most recent turn, if any.
func (t *Transcript) Last() (Turn, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.turns) == 0 {
		return Turn{}, false
	}
	return t.turns[len(t.turns)-1], true
}

// Len reports the number of turns.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.turns)
}

// Streaming reports whether an assistant turn is currently being extended.
func (t *Transcript) Streaming() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.streaming
}
