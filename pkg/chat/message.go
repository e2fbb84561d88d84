// Package chat provides the generic, provider-neutral representation of chat
// message histories which the format adapters then re-encode per provider.
package chat

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    string  `json:"role"`    // "system", "user", "assistant"
	Content Content `json:"content"` // Plain text or an ordered list of parts
}
