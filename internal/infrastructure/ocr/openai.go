// Package ocr integrates the OpenAI chat completions API for card field
// extraction and the contacts assistant.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	chatusecases "captr/internal/application/chat/usecases"
	scanusecases "captr/internal/application/scan/usecases"
	"captr/internal/shared/config"
	"captr/internal/shared/logger"
)

const defaultBaseURL = "https://api.openai.com/v1"

const extractionPrompt = `You are a business card OCR engine. Extract the contact fields from the card image(s) and reply with a single JSON object with exactly these string keys: name, job_title, company, email, phone, website, address, notes. Use "" for anything not on the card. notes holds any other relevant text on the card. Reply with JSON only, no markdown.`

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string, or content parts for vision
}

type contentPart struct {
	Type     string       `json:"type"`
	Text     string       `json:"text,omitempty"`
	ImageURL *imageURLRef `json:"image_url,omitempty"`
}

type imageURLRef struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// OpenAIClient talks to the chat completions endpoint. It backs both the
// scan OCR boundary and the contacts assistant.
type OpenAIClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	scanModel  string
	chatModel  string
	logger     logger.Interface
}

// NewOpenAIClient creates a new OpenAI API client
func NewOpenAIClient(cfg *config.OpenAIConfig, logger logger.Interface) *OpenAIClient {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		apiKey:     cfg.APIKey,
		scanModel:  cfg.ScanModel,
		chatModel:  cfg.ChatModel,
		logger:     logger,
	}
}

// ExtractCard sends the card image(s) to the vision model and parses the
// JSON reply. Extraction runs at temperature 0 so the same image yields the
// same fields.
func (c *OpenAIClient) ExtractCard(ctx context.Context, frontBase64, backBase64 string) (*scanusecases.ExtractedCard, error) {
	req := chatRequest{
		Model:       c.scanModel,
		MaxTokens:   1000,
		Temperature: 0,
		Messages: []chatMessage{
			{Role: "system", Content: extractionPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: "Extract the contact fields from this business card."},
				{Type: "image_url", ImageURL: &imageURLRef{URL: asDataURL(frontBase64)}},
			}},
		},
	}
	if backBase64 != "" {
		req.Messages = append(req.Messages, chatMessage{Role: "user", Content: []contentPart{
			{Type: "text", Text: "Here is the back side of the same card. Merge any additional information with the front."},
			{Type: "image_url", ImageURL: &imageURLRef{URL: asDataURL(backBase64)}},
		}})
	}

	content, err := c.complete(ctx, req)
	if err != nil {
		return nil, err
	}

	var card scanusecases.ExtractedCard
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &card); err != nil {
		c.logger.Errorw("failed to parse extraction reply", "error", err)
		return nil, fmt.Errorf("failed to parse extraction reply: %w", err)
	}
	return &card, nil
}

// Complete runs one assistant turn at temperature 0.7.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt string, messages []chatusecases.ChatMessage) (string, error) {
	req := chatRequest{
		Model:       c.chatModel,
		MaxTokens:   500,
		Temperature: 0.7,
		Messages:    make([]chatMessage, 0, len(messages)+1),
	}
	req.Messages = append(req.Messages, chatMessage{Role: "system", Content: systemPrompt})
	for _, m := range messages {
		req.Messages = append(req.Messages, chatMessage{Role: m.Role, Content: m.Content})
	}

	return c.complete(ctx, req)
}

func (c *OpenAIClient) complete(ctx context.Context, payload chatRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := "unknown error"
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		c.logger.Errorw("completion request rejected", "status", resp.StatusCode, "error", msg)
		return "", fmt.Errorf("completion request rejected: status %d: %s", resp.StatusCode, msg)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

// asDataURL wraps a bare base64 payload as a jpeg data URL; payloads that
// already carry a data: prefix pass through untouched.
func asDataURL(image string) string {
	if strings.HasPrefix(image, "data:") {
		return image
	}
	return "data:image/jpeg;base64," + image
}

// stripCodeFence unwraps replies the model insists on fencing as ```json.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
