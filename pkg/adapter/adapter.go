// Package adapter re-encodes a generic chat message history into the wire
// shape expected by a downstream provider. All transforms are pure functions
// over their arguments; nothing here performs I/O or holds state.
//
// The three provider transforms implement one shared policy - images are
// expensive context, so only the trailing MaxImageMessages turns keep them
// unless KeepImagesInHistory is set - but they stay separate implementations.
// The output vocabularies (string vs. array content, inline vs. side-channel
// images, different part tags) diverge enough that a common abstraction would
// obscure more than it saves.
package adapter

import (
	"github.com/driftwoodco/reshape/pkg/chat"
)

// Provider identifies a downstream chat API shape.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderOllama    Provider = "ollama"
)

// ImagePlaceholder replaces a message body whose only content was stripped
// images, so no message is ever emitted with empty content.
const ImagePlaceholder = "[Image was here]"

// Options governs how much image history the transforms retain.
// The zero value (and nil) means the defaults: strip images from all but the
// most recent non-system message.
type Options struct {
	// KeepImagesInHistory disables image stripping entirely.
	KeepImagesInHistory bool `json:"keep_images_in_history,omitempty"`

	// MaxImageMessages is how many of the most recent non-system messages
	// retain their images. Defaults to 1 when nil.
	MaxImageMessages *int `json:"max_image_messages,omitempty"`
}

func (o *Options) maxImageMessages() int {
	if o == nil || o.MaxImageMessages == nil {
		return 1
	}
	return *o.MaxImageMessages
}

// retainImages reports whether the message at index (out of count non-system
// messages) falls inside the recency window.
func (o *Options) retainImages(index, count int) bool {
	if o != nil && o.KeepImagesInHistory {
		return true
	}
	return count-index <= o.maxImageMessages()
}

// UnknownProviderError is returned by Transform for an unrecognized provider
// tag. It is the only error the adapter surfaces.
type UnknownProviderError struct {
	Provider string
}

func (e UnknownProviderError) Error() string {
	if e.Provider == "" {
		return "unknown provider"
	}

	return "unknown provider: " + e.Provider
}

// Transform dispatches to the provider-specific transform.
func Transform(messages []chat.Message, provider Provider, opts *Options) (any, error) {
	switch provider {
	case ProviderOpenAI:
		return ToOpenAIResponses(messages, opts), nil
	case ProviderAnthropic:
		return ToAnthropicMessages(messages, opts), nil
	case ProviderOllama:
		return ToOllamaChat(messages, opts), nil
	default:
		return nil, UnknownProviderError{Provider: string(provider)}
	}
}

// splitSystem pulls the first system message out of the history and returns
// its content alongside the remaining messages in original order.
func splitSystem(messages []chat.Message) (system chat.Content, rest []chat.Message, found bool) {
	rest = make([]chat.Message, 0, len(messages))

	for _, msg := range messages {
		if !found && msg.Role == chat.RoleSystem {
			system = msg.Content
			found = true
			continue
		}
		rest = append(rest, msg)
	}

	return system, rest, found
}
