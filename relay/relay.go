// Package relay provides a chat relay server that re-encodes generic chat
// requests into a configured provider's wire shape and forwards them.
package relay

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/driftwoodco/reshape/pkg/adapter"
	"github.com/driftwoodco/reshape/pkg/chat"
)

// ChatRequest is the generic inbound request: an OpenAI-style message list
// plus the image-history knobs, flat on the request body.
type ChatRequest struct {
	Model    string         `json:"model"`
	Messages []chat.Message `json:"messages"`
	Stream   *bool          `json:"stream,omitempty"`

	KeepImagesInHistory bool `json:"keep_images_in_history,omitempty"`
	MaxImageMessages    *int `json:"max_image_messages,omitempty"`
}

// options maps the request knobs onto the adapter's options.
func (req *ChatRequest) options() *adapter.Options {
	return &adapter.Options{
		KeepImagesInHistory: req.KeepImagesInHistory,
		MaxImageMessages:    req.MaxImageMessages,
	}
}

// ErrorResponse is the error body returned to clients.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Relay is a stateless chat relay. Incoming histories are transformed by the
// format adapter for the configured provider and proxied upstream; responses
// stream back verbatim.
type Relay struct {
	config     Config
	logger     *zap.Logger
	httpClient *http.Client
	server     *fiber.App
}

// New creates a new Relay.
func New(config Config, logger *zap.Logger) (*Relay, error) {
	// Fail on an unrecognized provider now rather than per request.
	if _, err := adapter.Transform(nil, config.Provider, nil); err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
		// Enable streaming
		StreamRequestBody: true,
	})

	r := &Relay{
		config: config,
		logger: logger,
		server: app,
		httpClient: &http.Client{
			// LLM requests can be slow, especially with thinking blocks
			Timeout: 5 * time.Minute,
		},
	}

	app.Post("/v1/chat", r.handleChat)
	app.Post("/v1/convert", r.handleConvert)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	return r, nil
}

// Run starts the relay server on the configured listening address.
func (r *Relay) Run() error {
	r.logger.Info("starting relay server",
		zap.String("listen", r.config.ListenAddr),
		zap.String("provider", string(r.config.Provider)),
	)

	return r.server.Listen(r.config.ListenAddr)
}

// Close shuts down the relay.
func (r *Relay) Close() error {
	return r.server.Shutdown()
}

// handleConvert transforms a message history for a provider without
// contacting any upstream. The provider defaults to the configured one and
// can be overridden with the `provider` query parameter.
func (r *Relay) handleConvert(c *fiber.Ctx) error {
	var req ChatRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		r.logger.Error("failed to parse request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	provider := adapter.Provider(c.Query("provider", string(r.config.Provider)))

	payload, err := adapter.Transform(req.Messages, provider, req.options())
	if err != nil {
		var unknown adapter.UnknownProviderError
		if errors.As(err, &unknown) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: unknown.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "transform failed"})
	}

	r.logger.Debug("converted messages",
		zap.String("provider", string(provider)),
		zap.Int("message_count", len(req.Messages)),
	)

	return c.JSON(payload)
}

// handleChat re-encodes the incoming history for the configured provider and
// forwards it upstream.
func (r *Relay) handleChat(c *fiber.Ctx) error {
	startTime := time.Now()

	var req ChatRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		r.logger.Error("failed to parse request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	if len(req.Messages) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "messages required"})
	}

	streaming := req.Stream != nil && *req.Stream

	r.logger.Debug("received chat request",
		zap.String("model", req.Model),
		zap.String("provider", string(r.config.Provider)),
		zap.Int("message_count", len(req.Messages)),
		zap.Bool("stream", streaming),
	)

	httpReq, err := r.buildUpstreamRequest(c.Context(), &req, streaming)
	if err != nil {
		r.logger.Error("failed to build upstream request", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "internal error"})
	}

	httpResp, err := r.httpClient.Do(httpReq)
	if err != nil {
		r.logger.Error("upstream request failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "upstream request failed"})
	}

	if httpResp.StatusCode != http.StatusOK {
		defer httpResp.Body.Close()
		body, _ := io.ReadAll(httpResp.Body)
		r.logger.Error("upstream returned error",
			zap.Int("status", httpResp.StatusCode),
			zap.String("body", truncate(string(body), 500)),
		)
		return c.Status(httpResp.StatusCode).JSON(ErrorResponse{Error: "upstream error"})
	}

	if streaming {
		return r.streamResponse(c, httpResp, startTime)
	}

	defer httpResp.Body.Close()
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		r.logger.Error("failed to read upstream response", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "upstream read failed"})
	}

	r.logger.Debug("received response from upstream",
		zap.Int("body_size", len(body)),
		zap.Duration("duration", time.Since(startTime)),
	)

	if ct := httpResp.Header.Get("Content-Type"); ct != "" {
		c.Set("Content-Type", ct)
	}

	return c.Send(body)
}

// streamResponse pipes the upstream byte stream through to the client
// verbatim. The relay never re-aggregates chunks; the provider's own
// streaming framing (SSE or NDJSON) passes untouched.
func (r *Relay) streamResponse(c *fiber.Ctx, httpResp *http.Response, startTime time.Time) error {
	if ct := httpResp.Header.Get("Content-Type"); ct != "" {
		c.Set("Content-Type", ct)
	} else {
		c.Set("Content-Type", "application/x-ndjson")
	}
	c.Set("Transfer-Encoding", "chunked")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer httpResp.Body.Close()

		buf := make([]byte, 4096)
		for {
			n, err := httpResp.Body.Read(buf)
			if n > 0 {
				if _, werr := w.Write(buf[:n]); werr != nil {
					r.logger.Warn("client went away mid-stream", zap.Error(werr))
					return
				}
				w.Flush()
			}
			if err != nil {
				if err != io.EOF {
					r.logger.Error("error reading stream", zap.Error(err))
				}
				break
			}
		}

		r.logger.Debug("streaming complete",
			zap.Duration("duration", time.Since(startTime)),
		)
	}))

	return nil
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
