package adapter

import "github.com/driftwoodco/reshape/pkg/chat"

// AnthropicPayload is the Anthropic Messages API shape: the first system
// message becomes the top-level system prompt.
type AnthropicPayload struct {
	System   string             `json:"system"`
	Messages []AnthropicMessage `json:"messages"`
}

// AnthropicMessage is a single message. Content is a plain string for
// text-only messages and []AnthropicPart for multimodal ones.
type AnthropicMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// AnthropicPart is a typed content part, "text" or "image".
type AnthropicPart struct {
	Type   string           `json:"type"`
	Text   string           `json:"text,omitempty"`
	Source *AnthropicSource `json:"source,omitempty"`
}

// AnthropicSource carries image bytes as a base64 payload, never the data
// URL itself.
type AnthropicSource struct {
	Type      string `json:"type"` // Always "base64"
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// ToAnthropicMessages re-encodes a message history for the Anthropic
// Messages API.
func ToAnthropicMessages(messages []chat.Message, opts *Options) AnthropicPayload {
	system, rest, _ := splitSystem(messages)

	out := make([]AnthropicMessage, 0, len(rest))
	for i, msg := range rest {
		if !IsMultimodal(msg.Content) {
			out = append(out, AnthropicMessage{Role: msg.Role, Content: msg.Content.Text})
			continue
		}

		keepImages := opts.retainImages(i, len(rest))

		parts := make([]AnthropicPart, 0, len(msg.Content.Parts))
		for _, part := range msg.Content.Parts {
			switch part.Type {
			case chat.PartTypeText:
				parts = append(parts, AnthropicPart{Type: "text", Text: part.Text})
			case chat.PartTypeImageURL:
				if !keepImages {
					continue
				}
				if img, ok := imageFromPart(part); ok {
					parts = append(parts, AnthropicPart{
						Type: "image",
						Source: &AnthropicSource{
							Type:      "base64",
							MediaType: img.MediaType,
							Data:      img.Data,
						},
					})
				}
			}
		}

		if len(parts) == 0 {
			parts = append(parts, AnthropicPart{Type: "text", Text: ImagePlaceholder})
		}

		out = append(out, AnthropicMessage{Role: msg.Role, Content: parts})
	}

	return AnthropicPayload{System: ExtractText(system), Messages: out}
}
