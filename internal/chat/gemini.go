package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// systemPrompt is sent with every chat call. The assistant must stay short,
// answer in the user's language and refuse to diagnose.
const systemPrompt = `You are a health assistant for migrant workers in Kerala, India.
Answer in the same language the user writes in.
Keep answers short (2-4 sentences), practical and easy to understand.
Give general health guidance only. Never give a diagnosis or prescribe medicine.
For anything serious, tell the user to visit a health center or call 108.`

// ErrBlocked is returned when the model refuses the prompt or response on
// safety grounds.
var ErrBlocked = errors.New("chat: response blocked by safety filter")

type GeminiRequest struct {
	Contents          []Content `json:"contents"`
	SystemInstruction *Content  `json:"systemInstruction,omitempty"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

// Client calls the Gemini generateContent endpoint. One call per user
// message; no retries, the caller decides what to show on failure.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetBaseURL overrides the API endpoint, used by tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// Ask sends a single user message and returns the model's reply text.
func (c *Client) Ask(ctx context.Context, message string) (string, error) {
	reqBody := GeminiRequest{
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: message}}},
		},
		SystemInstruction: &Content{Parts: []Part{{Text: systemPrompt}}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat: gemini returned status %d", resp.StatusCode)
	}

	var out GeminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}

	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return "", ErrBlocked
	}
	if len(out.Candidates) == 0 {
		return "", errors.New("chat: no candidates in response")
	}
	if out.Candidates[0].FinishReason == "SAFETY" {
		return "", ErrBlocked
	}
	if len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("chat: empty candidate content")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
