package domain

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one user/assistant exchange, oldest first in a history.
type Turn struct {
	User      string
	Assistant string
}

func NewTurn(user, assistant string) Turn {
	return Turn{User: user, Assistant: assistant}
}
