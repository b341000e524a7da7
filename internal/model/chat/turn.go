package chat

// Author identifies which side of the conversation produced a turn.
type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

// Attachment holds the raw bytes of a user-uploaded image together with its
// MIME type. Both are fixed at creation; the struct is never mutated after it
// enters a turn.
type Attachment struct {
	Data     []byte `json:"-"`
	MIMEType string `json:"mimeType"`
}

// Turn is a single entry in a conversation transcript.
type Turn struct {
	Author     Author      `json:"author"`
	Text       string      `json:"text"`
	Attachment *Attachment `json:"attachment,omitempty"`
}
