package adapter_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/driftwoodco/reshape/pkg/adapter"
	"github.com/driftwoodco/reshape/pkg/chat"
)

var _ = Describe("ToOpenAIResponses", func() {
	Context("system message handling", func() {
		It("pulls the first system message out as instructions", func() {
			payload := adapter.ToOpenAIResponses([]chat.Message{
				{Role: chat.RoleSystem, Content: chat.TextContent("Be terse")},
				{Role: chat.RoleUser, Content: chat.TextContent("hi")},
			}, nil)

			Expect(payload.Instructions).To(Equal("Be terse"))
			Expect(payload.Input).To(HaveLen(1))
			Expect(payload.Input[0].Role).To(Equal(chat.RoleUser))
		})

		It("leaves instructions empty when there is no system message", func() {
			payload := adapter.ToOpenAIResponses([]chat.Message{
				{Role: chat.RoleUser, Content: chat.TextContent("hi")},
			}, nil)

			Expect(payload.Instructions).To(BeEmpty())
		})
	})

	It("passes text-only messages through as plain strings", func() {
		payload := adapter.ToOpenAIResponses([]chat.Message{
			{Role: chat.RoleUser, Content: chat.TextContent("hello")},
			{Role: chat.RoleAssistant, Content: chat.TextContent("hi there")},
		}, nil)

		Expect(payload.Input).To(HaveLen(2))
		Expect(payload.Input[0].Content).To(Equal("hello"))
		Expect(payload.Input[1].Content).To(Equal("hi there"))
	})

	It("re-encodes a recent multimodal message with input_text and input_image parts", func() {
		payload := adapter.ToOpenAIResponses([]chat.Message{
			{Role: chat.RoleSystem, Content: chat.TextContent("Be terse")},
			{Role: chat.RoleUser, Content: chat.PartsContent(
				chat.TextPart("What's this?"),
				chat.ImagePart("data:image/png;base64,QQ=="),
			)},
		}, &adapter.Options{MaxImageMessages: intPtr(1)})

		Expect(payload.Instructions).To(Equal("Be terse"))
		Expect(payload.Input).To(HaveLen(1))
		Expect(payload.Input[0].Role).To(Equal(chat.RoleUser))
		Expect(payload.Input[0].Content).To(Equal([]adapter.ResponsesPart{
			{Type: "input_text", Text: "What's this?"},
			{Type: "input_image", ImageURL: "data:image/png;base64,QQ==", Detail: "auto"},
		}))
	})

	Context("recency policy", func() {
		multimodal := func(text string) chat.Message {
			return chat.Message{Role: chat.RoleUser, Content: chat.PartsContent(
				chat.TextPart(text),
				chat.ImagePart("data:image/png;base64,QQ=="),
			)}
		}

		hasImage := func(item adapter.ResponsesItem) bool {
			parts, ok := item.Content.([]adapter.ResponsesPart)
			Expect(ok).To(BeTrue())
			for _, part := range parts {
				if part.Type == "input_image" {
					return true
				}
			}
			return false
		}

		It("keeps images only in the last k messages", func() {
			payload := adapter.ToOpenAIResponses([]chat.Message{
				multimodal("one"), multimodal("two"), multimodal("three"), multimodal("four"),
			}, &adapter.Options{MaxImageMessages: intPtr(2)})

			Expect(payload.Input).To(HaveLen(4))
			Expect(hasImage(payload.Input[0])).To(BeFalse())
			Expect(hasImage(payload.Input[1])).To(BeFalse())
			Expect(hasImage(payload.Input[2])).To(BeTrue())
			Expect(hasImage(payload.Input[3])).To(BeTrue())
		})

		It("keeps all images when KeepImagesInHistory is set", func() {
			payload := adapter.ToOpenAIResponses([]chat.Message{
				multimodal("one"), multimodal("two"), multimodal("three"),
			}, &adapter.Options{KeepImagesInHistory: true})

			for _, item := range payload.Input {
				Expect(hasImage(item)).To(BeTrue())
			}
		})

		It("defaults to keeping images in the last message only", func() {
			payload := adapter.ToOpenAIResponses([]chat.Message{
				multimodal("one"), multimodal("two"),
			}, nil)

			Expect(hasImage(payload.Input[0])).To(BeFalse())
			Expect(hasImage(payload.Input[1])).To(BeTrue())
		})
	})

	Context("placeholder invariant", func() {
		It("substitutes a placeholder when stripping leaves no parts", func() {
			payload := adapter.ToOpenAIResponses([]chat.Message{
				{Role: chat.RoleUser, Content: chat.PartsContent(
					chat.ImagePart("data:image/png;base64,QQ=="),
				)},
				{Role: chat.RoleUser, Content: chat.TextContent("and now?")},
			}, &adapter.Options{MaxImageMessages: intPtr(1)})

			Expect(payload.Input[0].Content).To(Equal([]adapter.ResponsesPart{
				{Type: "input_text", Text: adapter.ImagePlaceholder},
			}))
		})

		It("substitutes a placeholder for an empty part list", func() {
			payload := adapter.ToOpenAIResponses([]chat.Message{
				{Role: chat.RoleUser, Content: chat.PartsContent()},
			}, nil)

			Expect(payload.Input[0].Content).To(Equal([]adapter.ResponsesPart{
				{Type: "input_text", Text: adapter.ImagePlaceholder},
			}))
		})
	})
})
