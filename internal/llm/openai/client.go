package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jorge-barreto/code2tutorial/internal/llm"
)

const defaultBaseURL = "https://api.openai.com"

// wrapKey holds a non-object schema; the API only accepts object roots.
const wrapKey = "result"

// Client implements the Chat Completions API with optional json_schema
// response formats.
type Client struct {
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
	client    *http.Client
}

func NewClient(opts llm.Options) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		apiKey:    opts.APIKey,
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
		client:    opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		c.baseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if c.model == "" {
		c.model = llm.DefaultModel(llm.OpenAI)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: 300 * time.Second}
	}
	return c
}

func (c *Client) Name() string { return llm.OpenAI }

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.send(ctx, c.payload(prompt))
}

// CompleteStructured constrains the answer to schema and returns the decoded
// value.
func (c *Client) CompleteStructured(ctx context.Context, prompt string, schema llm.Schema) (any, error) {
	def, wrapped := rootObject(schema.Definition)
	name := schema.Name
	if name == "" {
		name = "response"
	}
	payload := c.payload(prompt)
	payload["response_format"] = map[string]any{
		"type": "json_schema",
		"json_schema": map[string]any{
			"name":   name,
			"schema": def,
			"strict": false,
		},
	}
	text, err := c.send(ctx, payload)
	if err != nil {
		return nil, err
	}
	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return nil, fmt.Errorf("openai: %w: %v", llm.ErrMalformedResponse, err)
	}
	if !wrapped {
		return value, nil
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("openai: %w: expected object with %q", llm.ErrMalformedResponse, wrapKey)
	}
	return obj[wrapKey], nil
}

func (c *Client) payload(prompt string) map[string]any {
	p := map[string]any{
		"model":       c.model,
		"messages":    []map[string]string{{"role": "user", "content": prompt}},
		"temperature": 0,
	}
	if c.maxTokens > 0 {
		p["max_tokens"] = c.maxTokens
	}
	return p
}

func (c *Client) send(ctx context.Context, payload map[string]any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("authorization", "Bearer "+c.apiKey)
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := llm.CheckStatus("openai", resp); err != nil {
		return "", err
	}
	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", err
	}
	if len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: %w", llm.ErrEmptyResponse)
	}
	return response.Choices[0].Message.Content, nil
}

// rootObject wraps schemas whose root is not an object.
func rootObject(def map[string]any) (map[string]any, bool) {
	if def == nil {
		return map[string]any{"type": "object"}, false
	}
	if t, _ := def["type"].(string); t == "object" {
		return def, false
	}
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{wrapKey: def},
		"required":   []string{wrapKey},
	}, true
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
