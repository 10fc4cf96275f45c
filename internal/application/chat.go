package application

import "context"

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

type Message struct {
	Role    string
	Content string
}

// ChatModel is the language-model backend generating free-text replies.
// Errors are hard failures of the turn; they are never swallowed.
type ChatModel interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
