package convertcmder

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/driftwoodco/reshape/pkg/adapter"
	"github.com/driftwoodco/reshape/pkg/chat"
)

const convertLongDesc string = `Convert a chat message history to a provider wire format.

Reads a JSON array of OpenAI-style messages (string or multimodal
content) from a file or stdin and prints the payload shaped for the
given provider. Images outside the recency window are stripped per
the same policy the relay applies.

Examples:
  reshape convert --provider ollama messages.json
  cat messages.json | reshape convert --provider anthropic -
  reshape convert --provider openai --keep-images messages.json`

const convertShortDesc string = "Convert a message history for a provider"

type convertCommander struct {
	provider         string
	keepImages       bool
	maxImageMessages int
}

func NewConvertCmd() *cobra.Command {
	cmder := &convertCommander{}

	cmd := &cobra.Command{
		Use:   "convert <messages.json|->",
		Short: convertShortDesc,
		Long:  convertLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&cmder.provider, "provider", "p", "ollama", "Target provider: openai, anthropic or ollama")
	cmd.Flags().BoolVar(&cmder.keepImages, "keep-images", false, "Keep images in the full history")
	cmd.Flags().IntVar(&cmder.maxImageMessages, "max-image-messages", 1, "How many recent messages keep their images")

	return cmd
}

func (c *convertCommander) run(cmd *cobra.Command, path string) error {
	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("could not read messages: %w", err)
	}

	var messages []chat.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return fmt.Errorf("could not parse messages: %w", err)
	}

	opts := &adapter.Options{
		KeepImagesInHistory: c.keepImages,
		MaxImageMessages:    &c.maxImageMessages,
	}

	payload, err := adapter.Transform(messages, adapter.Provider(c.provider), opts)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal payload: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return nil
}
