// Package commitgen asks the model for a structured commit message.
package commitgen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/theburrowhub/aicommit/internal/commitmessage"
	"github.com/theburrowhub/aicommit/internal/ollama"
	"github.com/theburrowhub/aicommit/internal/schema"
)

// DefaultMaxDiffBytes caps the diff embedded in the prompt.
const DefaultMaxDiffBytes = 100 * 1024

// ChatCompleter runs one non-streaming chat completion constrained by format.
// *ollama.Client implements it.
type ChatCompleter interface {
	ChatFormat(ctx context.Context, model string, messages []ollama.ChatMessage, format json.RawMessage, opts *ollama.Options) (string, error)
}

// Generator turns a staged diff into a commit message.
type Generator struct {
	chat         ChatCompleter
	model        string
	temperature  float64
	maxDiffBytes int
	timeout      time.Duration
	logger       *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithTemperature sets the sampling temperature (default 0).
func WithTemperature(t float64) Option {
	return func(g *Generator) { g.temperature = t }
}

// WithMaxDiffBytes sets the diff cap; <= 0 disables it.
func WithMaxDiffBytes(n int) Option {
	return func(g *Generator) { g.maxDiffBytes = n }
}

// WithTimeout bounds the model request; <= 0 means no limit.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) { g.timeout = d }
}

// New returns a Generator using model on chat.
func New(chat ChatCompleter, model string, opts ...Option) *Generator {
	g := &Generator{
		chat:         chat,
		model:        model,
		maxDiffBytes: DefaultMaxDiffBytes,
		logger:       log.Default().WithPrefix("commitgen"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Model returns the model name used for generation.
func (g *Generator) Model() string {
	return g.model
}

// Generate sends one request and validates the reply. Transport errors are
// returned unmodified; malformed replies fail with commitmessage.ErrValidation.
func (g *Generator) Generate(ctx context.Context, branch, diff string) (commitmessage.Message, error) {
	format, err := schema.Get(schema.LabelCommitMessage)
	if err != nil {
		return commitmessage.Message{}, err
	}

	diff, truncated := truncateDiff(diff, g.maxDiffBytes)
	if truncated {
		g.logger.Warn("diff truncated for prompt", "max_bytes", g.maxDiffBytes)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	messages := []ollama.ChatMessage{{Role: "user", Content: BuildPrompt(branch, diff)}}
	raw, err := g.chat.ChatFormat(ctx, g.model, messages, format, &ollama.Options{
		Temperature: ollama.Temperature(g.temperature),
	})
	if err != nil {
		return commitmessage.Message{}, err
	}

	msg, err := commitmessage.Validate([]byte(raw))
	if err != nil {
		g.logger.Debug("rejected model output", "model", g.model, "content", raw)
		return commitmessage.Message{}, fmt.Errorf("model %s: %w", g.model, err)
	}
	return msg, nil
}
