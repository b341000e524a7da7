package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dilzzzz/bagdag/internal/model/persona"
	"github.com/dilzzzz/bagdag/internal/service/session"
)

func coachPersona() persona.Persona {
	return persona.Persona{ID: "coach", Name: "Pro AI Caddy", SystemInstruction: "coach instruction"}
}

func TestGetOrCreateIsMemoized(t *testing.T) {
	registry := session.NewRegistry()

	first := registry.GetOrCreate(coachPersona())
	second := registry.GetOrCreate(coachPersona())

	assert.Same(t, first, second)
	assert.Equal(t, 1, registry.Len())
	assert.NotEmpty(t, first.ID)
}

func TestGetOrCreateSeparatesPersonas(t *testing.T) {
	registry := session.NewRegistry()

	coach := registry.GetOrCreate(coachPersona())
	instructor := registry.GetOrCreate(persona.Persona{ID: "instructor"})

	assert.NotSame(t, coach, instructor)
	assert.Equal(t, 2, registry.Len())
}

func TestConversationAccumulatesHistory(t *testing.T) {
	registry := session.NewRegistry()
	conv := registry.GetOrCreate(coachPersona())

	require.Empty(t, conv.History())

	conv.AppendExchange("how far is a 7 iron?", "Around 150 yards for most golfers.")
	conv.AppendExchange("and an 8 iron?", "Roughly 140 yards.")

	history := conv.History()
	require.Len(t, history, 4)
	assert.Equal(t, "how far is a 7 iron?", history[0].Content)
	assert.Equal(t, "Roughly 140 yards.", history[3].Content)

	// The same handle is seen by every later access, so context survives.
	again := registry.GetOrCreate(coachPersona())
	assert.Len(t, again.History(), 4)
}

func TestHistoryReturnsCopy(t *testing.T) {
	registry := session.NewRegistry()
	conv := registry.GetOrCreate(coachPersona())
	conv.AppendExchange("a", "b")

	history := conv.History()
	history[0] = nil

	assert.NotNil(t, conv.History()[0])
}
