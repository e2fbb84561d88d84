package adapter

import (
	"strings"

	"github.com/driftwoodco/reshape/pkg/chat"
)

// ImageData is an image part resolved to its media type and base64 payload.
type ImageData struct {
	// URL is the original source URL, normally a base64 data URL.
	URL string `json:"url"`

	// MediaType is parsed from the data URL, "image/png" when it can't be.
	MediaType string `json:"media_type"`

	// Data is the base64 payload without the data-URL prefix.
	Data string `json:"data"`
}

// IsMultimodal reports whether the content is a part list rather than a
// plain string.
func IsMultimodal(content chat.Content) bool {
	return content.Multimodal
}

// ExtractText flattens message content to plain text. String content passes
// through unchanged; part lists concatenate their text parts with newline
// separators, ignoring images.
func ExtractText(content chat.Content) string {
	if !content.Multimodal {
		return content.Text
	}

	texts := make([]string, 0, len(content.Parts))
	for _, part := range content.Parts {
		if part.Type == chat.PartTypeText {
			texts = append(texts, part.Text)
		}
	}

	return strings.Join(texts, "\n")
}

// ExtractImages resolves the image parts of a part list, preserving order.
// Entries whose payload comes up empty are dropped; a malformed attachment
// means "no image", never an error.
func ExtractImages(parts []chat.Part) []ImageData {
	var images []ImageData
	for _, part := range parts {
		if img, ok := imageFromPart(part); ok {
			images = append(images, img)
		}
	}

	return images
}

// imageFromPart resolves a single part to ImageData. Parts that are not
// images, have no URL, or carry an empty payload report ok=false.
func imageFromPart(part chat.Part) (ImageData, bool) {
	if part.Type != chat.PartTypeImageURL || part.ImageURL == nil || part.ImageURL.URL == "" {
		return ImageData{}, false
	}

	url := part.ImageURL.URL
	mediaType, data, ok := chat.ParseDataURL(url)
	if !ok {
		// Not a data URL: treat the raw string as a bare base64 payload,
		// the shape Ollama hands images around in.
		mediaType = "image/png"
		data = url
	}

	if data == "" {
		return ImageData{}, false
	}

	return ImageData{URL: url, MediaType: mediaType, Data: data}, true
}
