package explain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nabheet/opencausenx/internal/causal"
	"github.com/nabheet/opencausenx/internal/logging"
)

// Ollama generates explanations with a local Ollama endpoint.
type Ollama struct {
	endpoint string
	model    string
	client   *http.Client
}

// NewOllama creates an Ollama explainer. If model is empty, the first
// model the endpoint reports is used.
func NewOllama(endpoint, model string) *Ollama {
	if endpoint == "" {
		endpoint = "http://localhost:11434"
	}
	return &Ollama{
		endpoint: endpoint,
		model:    model,
		client: &http.Client{
			Timeout: 120 * time.Second, // local inference can be slow
		},
	}
}

func (o *Ollama) Name() string { return "ollama" }

// Available reports whether the endpoint is up and has a usable model.
func (o *Ollama) Available() bool {
	model := o.getModel()
	if model == "" {
		logging.Debug("ollama not available, no models found", "endpoint", o.endpoint)
		return false
	}
	return true
}

// getModel returns the configured model or auto-detects one.
func (o *Ollama) getModel() string {
	if o.model != "" {
		return o.model
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.endpoint+"/api/tags", nil)
	if err != nil {
		return ""
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	var result struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ""
	}

	if len(result.Models) > 0 {
		model := result.Models[0].Name
		logging.Info("ollama auto-detected model", "model", model)
		return model
	}
	return ""
}

// Explain renders a natural-language explanation of the mapping.
func (o *Ollama) Explain(ctx context.Context, m causal.Mapping) (string, error) {
	model := o.getModel()
	if model == "" {
		return "", fmt.Errorf("ollama not available at %s (no models)", o.endpoint)
	}

	body := map[string]any{
		"model":  model,
		"system": systemPrompt,
		"messages": []map[string]string{
			{"role": "user", "content": userPrompt(m)},
		},
		"stream": false,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint+"/api/chat", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logging.Error("ollama API error", "status", resp.StatusCode, "body", string(respBody))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Model   string `json:"model"`
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	logging.Debug("ollama explanation generated",
		"model", result.Model,
		"content_length", len(result.Message.Content))

	return result.Message.Content, nil
}
