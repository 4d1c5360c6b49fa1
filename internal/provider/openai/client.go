package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fitaura/fitaura-cli/internal/model"
)

const (
	defaultBaseURL     = "https://api.openai.com"
	chatPath           = "/v1/chat/completions"
	transcriptionsPath = "/v1/audio/transcriptions"
	defaultModel       = "gpt-4o-mini"
	whisperModel       = "whisper-1"
	defaultTimeout     = 60 * time.Second
)

const parseSystemPrompt = "You are a precise parser for fitness logs. " +
	"From the transcript, identify FOOD items and EXERCISE activities and extract entities. " +
	"Quantities default to 1.0 and unit 'count' if unspecified. " +
	"Effort defaults to 'moderate' if unspecified. " +
	"Use numbers for quantity and duration; do not invent items."

const parseSchemaHint = `{
  "food": { "items": [ { "name": "string", "quantity": "number", "unit": "string" } ] },
  "exercise": { "items": [ { "activity": "string", "duration_min": "number", "effort_level": "easy|moderate|vigorous|max" } ] }
}`

type Client struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(apiKey, chatModel string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai api key missing: set OPENAI_API_KEY")
	}
	return &Client{APIKey: apiKey, Model: chatModel}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ParseTranscript asks the model for both entity categories in one shot
// and applies the contract's defaults to whatever comes back.
func (c *Client) ParseTranscript(ctx context.Context, transcript string) (model.ParsedEntities, error) {
	messages := []chatMessage{
		{Role: "system", Content: parseSystemPrompt},
		{Role: "user", Content: "Transcript: " + transcript},
		{Role: "system", Content: "Return ONLY a single valid JSON object with no commentary. Do not include code fences. Use the exact keys requested."},
		{Role: "user", Content: "Output must match this JSON outline (keys & types). Do not include extra keys. " + parseSchemaHint},
	}
	content, err := c.chatJSON(ctx, messages)
	if err != nil {
		return model.ParsedEntities{}, err
	}
	var parsed model.ParsedEntities
	if err := decodeModelJSON(content, &parsed); err != nil {
		return model.ParsedEntities{}, err
	}
	applyEntityDefaults(&parsed)
	return parsed, nil
}

func (c *Client) chatJSON(ctx context.Context, messages []chatMessage) (string, error) {
	chatModel := c.Model
	if chatModel == "" {
		chatModel = defaultModel
	}
	reqBody := chatRequest{Model: chatModel, Temperature: 0, Messages: messages}
	reqBody.ResponseFormat.Type = "json_object"
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	raw, err := c.post(ctx, chatPath, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat response contains no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// Transcribe uploads an audio file to the Whisper endpoint and returns the
// transcript text.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio file %s: %w", audioPath, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("build transcription form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("read audio file %s: %w", audioPath, err)
	}
	if err := form.WriteField("model", whisperModel); err != nil {
		return "", fmt.Errorf("build transcription form: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("build transcription form: %w", err)
	}

	raw, err := c.post(ctx, transcriptionsPath, form.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}
	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode transcription response: %w", err)
	}
	return parsed.Text, nil
}

func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+path, body)
	if err != nil {
		return nil, fmt.Errorf("create openai request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute openai request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openai response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai request failed with status %d", resp.StatusCode)
	}
	return raw, nil
}

// applyEntityDefaults enforces the extraction contract: quantity 1.0 and
// unit "count" for food, effort "moderate" for exercise.
func applyEntityDefaults(parsed *model.ParsedEntities) {
	for i := range parsed.Food.Items {
		it := &parsed.Food.Items[i]
		if it.Quantity <= 0 {
			it.Quantity = 1.0
		}
		if strings.TrimSpace(it.Unit) == "" {
			it.Unit = "count"
		}
	}
	for i := range parsed.Exercise.Items {
		it := &parsed.Exercise.Items[i]
		if strings.TrimSpace(it.EffortLevel) == "" {
			it.EffortLevel = "moderate"
		}
		if it.DurationMin < 0 {
			it.DurationMin = 0
		}
	}
}
