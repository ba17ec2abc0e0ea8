// Package ollama provides a client for the Ollama API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultEndpoint is the default Ollama API endpoint.
const DefaultEndpoint = "http://localhost:11434"

// APIError is a non-200 answer from the server.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ollama API error (status %d): %s", e.StatusCode, e.Body)
}

// Client is an Ollama API client.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient creates a new Ollama client with the given endpoint.
// If endpoint is empty, DefaultEndpoint is used.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	endpoint = strings.TrimRight(endpoint, "/")

	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 0, // No timeout - we use context for cancellation
		},
		logger: log.Default().WithPrefix("ollama"),
	}
}

// Options contains model parameters.
type Options struct {
	// Temperature is a pointer so an explicit 0 is sent.
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        float64  `json:"top_p,omitempty"`
	TopK        int      `json:"top_k,omitempty"`
	NumPredict  int      `json:"num_predict,omitempty"` // Max tokens
}

// Temperature returns a pointer for Options.Temperature.
func Temperature(t float64) *float64 {
	return &t
}

// GenerateRequest is the request body for the generate endpoint.
type GenerateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	Options *Options `json:"options,omitempty"`
}

// GenerateResponse is the response from the generate endpoint.
type GenerateResponse struct {
	Model         string `json:"model"`
	Response      string `json:"response"`
	Done          bool   `json:"done"`
	TotalDuration int64  `json:"total_duration,omitempty"`
	EvalCount     int    `json:"eval_count,omitempty"`
}

// ChatMessage represents a message in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request body for the chat endpoint.
type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	// Format is a JSON schema constraining the reply.
	Format  json.RawMessage `json:"format,omitempty"`
	Options *Options        `json:"options,omitempty"`
}

// ChatResponse is the response from the chat endpoint.
type ChatResponse struct {
	Model     string      `json:"model"`
	Message   ChatMessage `json:"message"`
	Done      bool        `json:"done"`
	CreatedAt string      `json:"created_at,omitempty"`
}

// ModelDetails describes a model's build.
type ModelDetails struct {
	Format            string `json:"format"`
	Family            string `json:"family"`
	ParameterSize     string `json:"parameter_size"`
	QuantizationLevel string `json:"quantization_level"`
}

// ModelInfo represents information about a model.
type ModelInfo struct {
	Name       string       `json:"name"`
	Model      string       `json:"model"`
	ModifiedAt time.Time    `json:"modified_at"`
	Size       int64        `json:"size"`
	Digest     string       `json:"digest"`
	Details    ModelDetails `json:"details"`
}

// ListModelsResponse is the response from the list models endpoint.
type ListModelsResponse struct {
	Models []ModelInfo `json:"models"`
}

// ShowResponse is the response from the show endpoint.
type ShowResponse struct {
	License    string         `json:"license,omitempty"`
	Modelfile  string         `json:"modelfile,omitempty"`
	Parameters string         `json:"parameters,omitempty"`
	Template   string         `json:"template,omitempty"`
	Details    ModelDetails   `json:"details"`
	ModelInfo  map[string]any `json:"model_info,omitempty"`
}

type modelRequest struct {
	Model  string `json:"model"`
	Stream *bool  `json:"stream,omitempty"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// Generate sends a prompt to Ollama and returns the response.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	req := GenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	}

	c.logger.Debug("generate request", "model", model, "prompt", truncateForLog(prompt, 500))

	startTime := time.Now()
	var result GenerateResponse
	if err := c.do(ctx, http.MethodPost, "/api/generate", req, &result); err != nil {
		c.logger.Debug("generate failed", "model", model, "elapsed", time.Since(startTime), "err", err)
		return "", err
	}

	c.logger.Debug("generate response", "model", model, "elapsed", time.Since(startTime), "response", truncateForLog(result.Response, 500))
	return result.Response, nil
}

// Chat sends a chat conversation to Ollama and returns the response.
func (c *Client) Chat(ctx context.Context, model string, messages []ChatMessage) (string, error) {
	return c.ChatFormat(ctx, model, messages, nil, nil)
}

// ChatFormat sends a chat conversation with an optional output schema and
// model options. The reply content is returned as-is.
func (c *Client) ChatFormat(ctx context.Context, model string, messages []ChatMessage, format json.RawMessage, opts *Options) (string, error) {
	req := ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
		Format:   format,
		Options:  opts,
	}

	for i, msg := range messages {
		c.logger.Debug("chat request", "model", model, "index", i, "role", msg.Role, "content", truncateForLog(msg.Content, 500))
	}

	startTime := time.Now()
	var result ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", req, &result); err != nil {
		c.logger.Debug("chat failed", "model", model, "elapsed", time.Since(startTime), "err", err)
		return "", err
	}

	c.logger.Debug("chat response", "model", model, "elapsed", time.Since(startTime), "content", truncateForLog(result.Message.Content, 500))
	return result.Message.Content, nil
}

// ListModels returns the list of available models.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var result ListModelsResponse
	if err := c.do(ctx, http.MethodGet, "/api/tags", nil, &result); err != nil {
		return nil, err
	}
	return result.Models, nil
}

// Show returns details for a model.
func (c *Client) Show(ctx context.Context, model string) (*ShowResponse, error) {
	var result ShowResponse
	if err := c.do(ctx, http.MethodPost, "/api/show", modelRequest{Model: model}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Pull downloads a model and waits until the server reports success.
func (c *Client) Pull(ctx context.Context, model string) error {
	stream := false
	var result statusResponse
	if err := c.do(ctx, http.MethodPost, "/api/pull", modelRequest{Model: model, Stream: &stream}, &result); err != nil {
		return err
	}
	if result.Status != "success" {
		return fmt.Errorf("pull %s: unexpected status %q", model, result.Status)
	}
	return nil
}

// Delete removes a model.
func (c *Client) Delete(ctx context.Context, model string) error {
	return c.do(ctx, http.MethodDelete, "/api/delete", modelRequest{Model: model}, nil)
}

// Ping checks if the Ollama server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("ollama server not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama server returned status %d", resp.StatusCode)
	}

	return nil
}

// GetEndpoint returns the configured endpoint.
func (c *Client) GetEndpoint() string {
	return c.endpoint
}

// do sends body as JSON and decodes the reply into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// truncateForLog truncates a string for logging purposes.
func truncateForLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
