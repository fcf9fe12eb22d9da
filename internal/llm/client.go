// Package llm generates vocabulary cards through a hosted language model.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://router.huggingface.co/v1"

// ErrNoToken is returned when no API token is configured; callers fall back
// to an offline card.
var ErrNoToken = errors.New("language model token not configured")

// WordCard is the generated learning content for one word.
type WordCard struct {
	Word        string `json:"word"`
	Definition  string `json:"definition"`
	Translation string `json:"translation"`
	Example1    string `json:"example1"`
	Example2    string `json:"example2"`
}

type Client struct {
	token      string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(token, model string) *Client {
	return &Client{
		token:   token,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateWordCard asks the model for a card and parses its reply, falling
// back to regex extraction when the model wraps or mangles the JSON.
func (c *Client) GenerateWordCard(ctx context.Context, word string) (*WordCard, error) {
	if c.token == "" {
		return nil, ErrNoToken
	}

	text, err := c.chat(ctx, fmt.Sprintf(wordCardPrompt, word))
	if err != nil {
		return nil, err
	}

	var card WordCard
	if err := json.Unmarshal([]byte(text), &card); err == nil && card.Word != "" {
		return &card, nil
	}

	if jsonStr, err := ExtractJSON(text); err == nil {
		if err := json.Unmarshal([]byte(jsonStr), &card); err == nil {
			if card.Word == "" {
				card.Word = word
			}
			return &card, nil
		}
	}

	return extractCard(text, word), nil
}

func (c *Client) chat(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   200,
		Temperature: 0.1,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("language model returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", errors.New("language model returned no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}
