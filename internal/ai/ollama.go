package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// rawReplyLimit caps the fallback reply built from an unexpected
// response body.
const rawReplyLimit = 800

// OllamaProvider talks to a local Ollama server via its chat endpoint.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaProvider builds a provider for the given base URL and model.
// A zero timeout defaults to 60 seconds.
func NewOllamaProvider(baseURL, model string, timeout time.Duration) *OllamaProvider {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OllamaProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name implements Provider.
func (p *OllamaProvider) Name() string { return "ollama" }

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaResponse struct {
	Message ollamaMessage `json:"message"`
}

// Generate implements Provider.
func (p *OllamaProvider) Generate(ctx context.Context, messages []Message) (string, error) {
	reqBody := ollamaRequest{
		Model:    p.model,
		Messages: make([]ollamaMessage, 0, len(messages)),
		Stream:   false,
	}
	for _, m := range messages {
		reqBody.Messages = append(reqBody.Messages, ollamaMessage{Role: m.Role, Content: m.Content})
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("ollama: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("ollama: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama: status %s", resp.Status)
	}

	reply := ExtractOllamaReply(body)
	if reply == "" {
		return "", fmt.Errorf("ollama: empty response body")
	}
	return reply, nil
}

// ExtractOllamaReply pulls message.content out of a chat response body.
// When the body does not have the expected shape, the raw JSON is
// returned truncated so the caller still sees something useful.
func ExtractOllamaReply(body []byte) string {
	var parsed ollamaResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		if reply := strings.TrimSpace(parsed.Message.Content); reply != "" {
			return reply
		}
	}
	raw := strings.TrimSpace(string(body))
	if len(raw) > rawReplyLimit {
		raw = raw[:rawReplyLimit]
	}
	return raw
}
