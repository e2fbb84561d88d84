package adapter_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/driftwoodco/reshape/pkg/adapter"
	"github.com/driftwoodco/reshape/pkg/chat"
)

var _ = Describe("ToAnthropicMessages", func() {
	It("pulls the first system message out as the system prompt", func() {
		payload := adapter.ToAnthropicMessages([]chat.Message{
			{Role: chat.RoleSystem, Content: chat.TextContent("Be terse")},
			{Role: chat.RoleUser, Content: chat.TextContent("hi")},
		}, nil)

		Expect(payload.System).To(Equal("Be terse"))
		Expect(payload.Messages).To(HaveLen(1))
		Expect(payload.Messages[0].Content).To(Equal("hi"))
	})

	It("re-encodes kept images as base64 sources, never data URLs", func() {
		payload := adapter.ToAnthropicMessages([]chat.Message{
			{Role: chat.RoleUser, Content: chat.PartsContent(
				chat.TextPart("What's this?"),
				chat.ImagePart("data:image/jpeg;base64,Ug=="),
			)},
		}, nil)

		Expect(payload.Messages).To(HaveLen(1))
		Expect(payload.Messages[0].Content).To(Equal([]adapter.AnthropicPart{
			{Type: "text", Text: "What's this?"},
			{Type: "image", Source: &adapter.AnthropicSource{
				Type:      "base64",
				MediaType: "image/jpeg",
				Data:      "Ug==",
			}},
		}))
	})

	It("strips images outside the recency window", func() {
		payload := adapter.ToAnthropicMessages([]chat.Message{
			{Role: chat.RoleUser, Content: chat.PartsContent(
				chat.TextPart("old"),
				chat.ImagePart("data:image/png;base64,QQ=="),
			)},
			{Role: chat.RoleUser, Content: chat.TextContent("new")},
		}, nil)

		Expect(payload.Messages[0].Content).To(Equal([]adapter.AnthropicPart{
			{Type: "text", Text: "old"},
		}))
	})

	It("substitutes a placeholder when stripping leaves no parts", func() {
		payload := adapter.ToAnthropicMessages([]chat.Message{
			{Role: chat.RoleUser, Content: chat.PartsContent(
				chat.ImagePart("data:image/png;base64,QQ=="),
			)},
			{Role: chat.RoleUser, Content: chat.TextContent("and now?")},
		}, nil)

		Expect(payload.Messages[0].Content).To(Equal([]adapter.AnthropicPart{
			{Type: "text", Text: adapter.ImagePlaceholder},
		}))
	})

	It("keeps every image when KeepImagesInHistory is set", func() {
		payload := adapter.ToAnthropicMessages([]chat.Message{
			{Role: chat.RoleUser, Content: chat.PartsContent(
				chat.ImagePart("data:image/png;base64,QQ=="),
			)},
			{Role: chat.RoleUser, Content: chat.PartsContent(
				chat.ImagePart("data:image/png;base64,Ug=="),
			)},
		}, &adapter.Options{KeepImagesInHistory: true})

		for _, msg := range payload.Messages {
			parts, ok := msg.Content.([]adapter.AnthropicPart)
			Expect(ok).To(BeTrue())
			Expect(parts).To(HaveLen(1))
			Expect(parts[0].Type).To(Equal("image"))
		}
	})
})
