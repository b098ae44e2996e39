package domain

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// ChatMessage is one transcript entry. Messages are immutable once appended;
// ordering is insertion order.
type ChatMessage struct {
	Role     string
	Text     string
	Sections []Section
	ImageRef string // display name of an attached image, if any
}
