package util

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiClient is a thin client for the Google generative-language API.
// One outbound call per chat message, no retry or backoff: an upstream
// failure surfaces directly to the caller.
type GeminiClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
	baseURL    string
}

// NewGeminiClient returns a client for the given API key and model name.
func NewGeminiClient(apiKey, model string) *GeminiClient {
	return &GeminiClient{
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    geminiBaseURL,
	}
}

// SetBaseURLForTest points the client at a test server.
func (g *GeminiClient) SetBaseURLForTest(baseURL string) {
	g.baseURL = baseURL
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateReply sends a single user message to the generateContent endpoint
// and returns the first candidate's text.
func (g *GeminiClient) GenerateReply(ctx context.Context, message string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("gemini api key is not configured")
	}

	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: message}}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode assistant response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("assistant upstream error %d: %s", parsed.Error.Code, parsed.Error.Message)
		}
		return "", fmt.Errorf("assistant upstream returned status %d", resp.StatusCode)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("assistant returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
