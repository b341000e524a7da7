package chat

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/cloudwego/eino/schema"

	chatmodel "github.com/dilzzzz/bagdag/internal/model/chat"
	"github.com/dilzzzz/bagdag/internal/model/persona"
	"github.com/dilzzzz/bagdag/internal/service/session"
)

// FallbackMessage is the fixed user-facing text an assistant turn carries
// when a submission fails anywhere between encoding and the end of the
// provider stream.
const FallbackMessage = "Sorry, I'm having trouble connecting. Please try again later."

var (
	// ErrBusy signals that a submission is already in flight; the second
	// call is ignored and the transcript untouched.
	ErrBusy = errors.New("a submission is already in flight")

	errNoProvider = errors.New("ai provider unavailable")
)

// Provider is the orchestrator's view of the generative-AI backend.
type Provider interface {
	// StreamReply sends the user's text through the persona's conversation
	// and returns a finite, forward-only fragment stream.
	StreamReply(ctx context.Context, conv *session.Conversation, text string) (*schema.StreamReader[*schema.Message], error)
	// AnalyzeSwing issues one stateless multimodal request combining the
	// fixed analysis instruction, the encoded image, and the caption.
	AnalyzeSwing(ctx context.Context, caption, imageB64, mimeType string) (string, error)
}

// Orchestrator is the single entry point for submitting a user turn and
// reconciling the assistant's response into the transcript. One exists per
// chat session; it borrows conversation handles from the shared registry
// and never keeps its own copy.
type Orchestrator struct {
	persona  persona.Persona
	registry *session.Registry
	provider Provider

	transcript *chatmodel.Transcript

	mu      sync.Mutex
	busy    bool
	pending *chatmodel.Attachment
}

// NewOrchestrator builds an orchestrator whose transcript is seeded with
// the persona's greeting.
func NewOrchestrator(p persona.Persona, registry *session.Registry, provider Provider) *Orchestrator {
	return &Orchestrator{
		persona:    p,
		registry:   registry,
		provider:   provider,
		transcript: chatmodel.NewTranscript(p.Greeting),
	}
}

// Transcript returns a snapshot of the conversation so far.
func (o *Orchestrator) Transcript() []chatmodel.Turn {
	return o.transcript.Turns()
}

// Busy reports whether a submission is in flight.
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

// StageAttachment stores the image to be captured by the next submission,
// replacing any previously staged one.
func (o *Orchestrator) StageAttachment(att *chatmodel.Attachment) error {
	if att == nil || len(att.Data) == 0 {
		return errors.New("attachment is empty")
	}
	if !supportedImageType(att.MIMEType) {
		return fmt.Errorf("unsupported attachment type %q", att.MIMEType)
	}

	o.mu.Lock()
	o.pending = att
	o.mu.Unlock()
	return nil
}

// ClearAttachment drops the staged attachment, if any.
func (o *Orchestrator) ClearAttachment() {
	o.mu.Lock()
	o.pending = nil
	o.mu.Unlock()
}

// Submit drives one user turn end to end. Empty submissions are silently
// ignored; a submission arriving while another is in flight returns ErrBusy
// without touching the transcript. Provider failures never escape: they end
// as a terminal assistant turn carrying FallbackMessage, and the busy state
// is always cleared so the orchestrator stays re-enterable.
//
// onDelta, when non-nil, observes each streamed fragment after it has been
// folded into the transcript; it is called from the submitting goroutine.
func (o *Orchestrator) Submit(ctx context.Context, text string, onDelta func(string)) error {
	text = strings.TrimSpace(text)

	o.mu.Lock()
	if text == "" && o.pending == nil {
		o.mu.Unlock()
		return nil
	}
	if o.busy {
		o.mu.Unlock()
		return ErrBusy
	}
	o.busy = true
	// Capture and release the pending attachment now, so the user can stage
	// the next one while this submission is still streaming.
	att := o.pending
	o.pending = nil
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.busy = false
		o.mu.Unlock()
	}()

	o.transcript.AppendUser(text, att)

	if att != nil {
		o.analyzeAttachment(ctx, text, att)
		return nil
	}

	o.streamConversation(ctx, text, onDelta)
	return nil
}

// analyzeAttachment handles the multimodal single-shot branch. The persona
// conversation does not participate: each image analysis is stateless.
func (o *Orchestrator) analyzeAttachment(ctx context.Context, caption string, att *chatmodel.Attachment) {
	if o.provider == nil {
		o.failBeforeReply(errNoProvider)
		return
	}

	encoded := base64.StdEncoding.EncodeToString(att.Data)

	reply, err := o.provider.AnalyzeSwing(ctx, caption, encoded, att.MIMEType)
	if err != nil {
		o.failBeforeReply(err)
		return
	}

	o.transcript.AppendAssistant(reply)
}

// streamConversation handles the streamed conversational branch: borrow the
// persona's conversation, open an assistant turn, fold fragments in arrival
// order, then freeze the turn and record the exchange as context.
func (o *Orchestrator) streamConversation(ctx context.Context, text string, onDelta func(string)) {
	if o.provider == nil {
		o.failBeforeReply(errNoProvider)
		return
	}

	conv := o.registry.GetOrCreate(o.persona)

	stream, err := o.provider.StreamReply(ctx, conv, text)
	if err != nil {
		o.failBeforeReply(err)
		return
	}
	defer stream.Close()

	if err := o.transcript.BeginAssistant(); err != nil {
		log.Printf("[chat] begin assistant turn: %v", err)
		o.failBeforeReply(err)
		return
	}

	var acc strings.Builder
	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			log.Printf("[chat] stream failed for persona=%s: %v", o.persona.ID, recvErr)
			_ = o.transcript.AbortLast(FallbackMessage)
			return
		}
		if chunk == nil || chunk.Content == "" {
			continue
		}

		acc.WriteString(chunk.Content)
		if err := o.transcript.ExtendLast(acc.String()); err != nil {
			log.Printf("[chat] fold fragment: %v", err)
			_ = o.transcript.AbortLast(FallbackMessage)
			return
		}
		if onDelta != nil {
			onDelta(chunk.Content)
		}
	}

	_ = o.transcript.FinalizeLast()
	conv.AppendExchange(text, acc.String())
}

// failBeforeReply records a failure that happened before any assistant turn
// was opened for this submission.
func (o *Orchestrator) failBeforeReply(err error) {
	log.Printf("[chat] submission failed for persona=%s: %v", o.persona.ID, err)
	o.transcript.AppendAssistant(FallbackMessage)
}

func supportedImageType(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "image/webp":
		return true
	}
	return false
}
