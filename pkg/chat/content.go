package chat

import (
	"encoding/json"
	"strings"
)

// Part types.
const (
	PartTypeText     = "text"
	PartTypeImageURL = "image_url"
)

// Content is a message body. On the wire it is either a JSON string or an
// array of typed parts; Multimodal records which shape it arrived in so the
// distinction survives a round trip.
type Content struct {
	Text       string
	Parts      []Part
	Multimodal bool
}

// TextContent builds a plain-string message body.
func TextContent(text string) Content {
	return Content{Text: text}
}

// PartsContent builds a multimodal message body from the given parts.
func PartsContent(parts ...Part) Content {
	return Content{Parts: parts, Multimodal: true}
}

// MarshalJSON encodes the body in its original wire shape.
func (c Content) MarshalJSON() ([]byte, error) {
	if c.Multimodal {
		return json.Marshal(c.Parts)
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON accepts either a plain string or an array of parts.
func (c *Content) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*c = Content{Text: text}
		return nil
	}

	var parts []Part
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	*c = Content{Parts: parts, Multimodal: true}
	return nil
}

// Part is a single element of a multimodal message body.
type Part struct {
	Type     string    `json:"type"`                // "text" or "image_url"
	Text     string    `json:"text,omitempty"`      // Set when Type == "text"
	ImageURL *ImageURL `json:"image_url,omitempty"` // Set when Type == "image_url"
}

// ImageURL carries the image location, in practice a base64 data URL.
type ImageURL struct {
	URL string `json:"url"`
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Type: PartTypeText, Text: text}
}

// ImagePart builds an image part from a data URL.
func ImagePart(url string) Part {
	return Part{Type: PartTypeImageURL, ImageURL: &ImageURL{URL: url}}
}

// ParseDataURL splits a `data:<mediaType>;base64,<payload>` string into its
// media type and base64 payload. ok is false when the string is not a
// base64 data URL; callers decide how to treat the raw value then.
func ParseDataURL(url string) (mediaType, data string, ok bool) {
	rest, found := strings.CutPrefix(url, "data:")
	if !found {
		return "", "", false
	}

	mediaType, data, found = strings.Cut(rest, ";base64,")
	if !found || mediaType == "" {
		return "", "", false
	}

	return mediaType, data, true
}
