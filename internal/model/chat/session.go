package chat

import "time"

// Session captures a transient chat session bound to a coaching persona.
type Session struct {
	ID        string    `json:"id"`
	PersonaID string    `json:"personaId"`
	CreatedAt time.Time `json:"createdAt"`
}