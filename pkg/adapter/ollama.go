package adapter

import "github.com/driftwoodco/reshape/pkg/chat"

// OllamaPayload is the Ollama chat API shape.
type OllamaPayload struct {
	Messages []OllamaMessage `json:"messages"`
}

// OllamaMessage is a single message. Content is always plain text; retained
// images ride alongside as bare base64 payloads.
type OllamaMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

// ToOllamaChat re-encodes a message history for the Ollama chat API. The
// system message, when present, leads as its own message. Images never
// appear inline in content; when the recency policy keeps them they attach
// as a parallel list of base64 payloads, omitted entirely when empty.
func ToOllamaChat(messages []chat.Message, opts *Options) OllamaPayload {
	system, rest, hasSystem := splitSystem(messages)

	out := make([]OllamaMessage, 0, len(rest)+1)
	if hasSystem {
		out = append(out, OllamaMessage{Role: chat.RoleSystem, Content: ExtractText(system)})
	}

	for i, msg := range rest {
		m := OllamaMessage{Role: msg.Role, Content: ExtractText(msg.Content)}

		if IsMultimodal(msg.Content) && opts.retainImages(i, len(rest)) {
			images := ExtractImages(msg.Content.Parts)
			for _, img := range images {
				m.Images = append(m.Images, img.Data)
			}
		}

		out = append(out, m)
	}

	return OllamaPayload{Messages: out}
}
