package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientEndpoint(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", DefaultEndpoint},
		{"http://example:11434/", "http://example:11434"},
		{"127.0.0.1:11434", "http://127.0.0.1:11434"},
		{"https://ollama.internal", "https://ollama.internal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewClient(tt.input).GetEndpoint(), tt.input)
	}
}

func TestChatFormat(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))

		_ = json.NewEncoder(w).Encode(ChatResponse{
			Model:   "llama3.1",
			Message: ChatMessage{Role: "assistant", Content: `{"message_type":"fix","title":"x"}`},
			Done:    true,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	schema := json.RawMessage(`{"type":"object"}`)
	content, err := client.ChatFormat(context.Background(), "llama3.1",
		[]ChatMessage{{Role: "user", Content: "hello"}}, schema, &Options{Temperature: Temperature(0)})
	require.NoError(t, err)

	assert.Equal(t, `{"message_type":"fix","title":"x"}`, content)
	assert.Equal(t, "llama3.1", got["model"])
	assert.Equal(t, false, got["stream"])
	assert.Equal(t, map[string]any{"type": "object"}, got["format"])
	assert.Equal(t, map[string]any{"temperature": float64(0)}, got["options"], "explicit zero temperature must be sent")
}

func TestChatOmitsFormat(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(ChatResponse{Message: ChatMessage{Content: "hi"}})
	}))
	defer srv.Close()

	content, err := NewClient(srv.URL).Chat(context.Background(), "m", []ChatMessage{{Role: "user", Content: "x"}})
	require.NoError(t, err)
	assert.Equal(t, "hi", content)
	assert.NotContains(t, got, "format")
	assert.NotContains(t, got, "options")
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"model 'nope' not found"}`+"\n")
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Generate(context.Background(), "nope", "hi")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, `{"error":"model 'nope' not found"}`, apiErr.Body)
	assert.Contains(t, err.Error(), "status 404")
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		var req GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "why is the sky blue", req.Prompt)
		_ = json.NewEncoder(w).Encode(GenerateResponse{Response: "rayleigh", Done: true})
	}))
	defer srv.Close()

	out, err := NewClient(srv.URL).Generate(context.Background(), "llama3.1", "why is the sky blue")
	require.NoError(t, err)
	assert.Equal(t, "rayleigh", out)
}

func TestModelManagement(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/api/tags":
			_, _ = io.WriteString(w, `{"models":[{"name":"llama3.1:latest","model":"llama3.1:latest","size":42,
				"modified_at":"2024-08-01T10:00:00Z","details":{"format":"gguf","parameter_size":"8.0B","quantization_level":"Q4_0"}}]}`)
		case "/api/show":
			var req modelRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "llama3.1", req.Model)
			_, _ = io.WriteString(w, `{"parameters":"stop \"<|eot_id|>\"","details":{"family":"llama","format":"gguf"}}`)
		case "/api/pull":
			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, false, req["stream"])
			_, _ = io.WriteString(w, `{"status":"success"}`)
		case "/api/delete":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	client := NewClient(srv.URL)

	models, err := client.ListModels(ctx)
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "llama3.1:latest", models[0].Name)
	assert.Equal(t, "Q4_0", models[0].Details.QuantizationLevel)
	assert.Equal(t, 2024, models[0].ModifiedAt.Year())

	info, err := client.Show(ctx, "llama3.1")
	require.NoError(t, err)
	assert.Equal(t, "llama", info.Details.Family)

	require.NoError(t, client.Pull(ctx, "llama3.1"))
	require.NoError(t, client.Delete(ctx, "llama3.1"))
	require.NoError(t, client.Ping(ctx))

	assert.Equal(t, []string{
		"GET /api/tags",
		"POST /api/show",
		"POST /api/pull",
		"DELETE /api/delete",
		"GET /api/tags",
	}, calls)
}

func TestPullUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"pulling manifest"}`)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Pull(context.Background(), "llama3.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pulling manifest")
}

func TestPingUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient(url).Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reachable")
}

func TestTruncateForLog(t *testing.T) {
	assert.Equal(t, "abc", truncateForLog("abc", 5))
	assert.Equal(t, "ab...", truncateForLog("abcdef", 2))
}
