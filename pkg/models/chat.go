package models

// Chat roles. "model" matches the role name the generative API expects in
// conversation history, so transcripts round-trip without translation.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one turn in a chat transcript. Transcripts live only in the
// caller's session state; the server never persists them.
type ChatMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}
