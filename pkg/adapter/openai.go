package adapter

import "github.com/driftwoodco/reshape/pkg/chat"

// ResponsesPayload is the OpenAI Responses API shape: the first system
// message becomes top-level instructions, everything else becomes input.
type ResponsesPayload struct {
	Instructions string          `json:"instructions"`
	Input        []ResponsesItem `json:"input"`
}

// ResponsesItem is a single input message. Content is a plain string for
// text-only messages and []ResponsesPart for multimodal ones.
type ResponsesItem struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ResponsesPart is a typed content part, "input_text" or "input_image".
type ResponsesPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"` // Original data URL
	Detail   string `json:"detail,omitempty"`
}

// ToOpenAIResponses re-encodes a message history for the OpenAI Responses
// API. Kept images carry their original data URL with detail fixed to auto.
func ToOpenAIResponses(messages []chat.Message, opts *Options) ResponsesPayload {
	system, rest, _ := splitSystem(messages)

	input := make([]ResponsesItem, 0, len(rest))
	for i, msg := range rest {
		if !IsMultimodal(msg.Content) {
			input = append(input, ResponsesItem{Role: msg.Role, Content: msg.Content.Text})
			continue
		}

		keepImages := opts.retainImages(i, len(rest))

		parts := make([]ResponsesPart, 0, len(msg.Content.Parts))
		for _, part := range msg.Content.Parts {
			switch part.Type {
			case chat.PartTypeText:
				parts = append(parts, ResponsesPart{Type: "input_text", Text: part.Text})
			case chat.PartTypeImageURL:
				if !keepImages {
					continue
				}
				if img, ok := imageFromPart(part); ok {
					parts = append(parts, ResponsesPart{
						Type:     "input_image",
						ImageURL: img.URL,
						Detail:   "auto",
					})
				}
			}
		}

		if len(parts) == 0 {
			parts = append(parts, ResponsesPart{Type: "input_text", Text: ImagePlaceholder})
		}

		input = append(input, ResponsesItem{Role: msg.Role, Content: parts})
	}

	return ResponsesPayload{Instructions: ExtractText(system), Input: input}
}
