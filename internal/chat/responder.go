// Package chat talks to the remote chat completion service that powers the
// supportive companion. The remote call is a single request/response with no
// retry; any failure is replaced by a fixed canned reply so the session
// never errors in the user's face.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"anchor/internal/constants"
	"anchor/internal/logger"
	"anchor/internal/models"
)

const (
	roleSystem    = "system"
	roleUser      = "user"
	roleAssistant = "assistant"
)

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Responder calls the chat completion service.
type Responder struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

// NewResponder constructs a chat responder.
func NewResponder(baseURL, model, apiKey string) *Responder {
	return &Responder{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Reply sends the prior history plus the new user text and returns the
// companion's response. On any failure it returns the canned fallback reply.
func (r *Responder) Reply(ctx context.Context, history []models.ChatMessage, userText string) string {
	text, err := r.complete(ctx, history, userText)
	if err != nil {
		logger.Warn("Chat completion failed, using canned reply", "error", err)
		return constants.FallbackReply
	}
	return text
}

func (r *Responder) complete(ctx context.Context, history []models.ChatMessage, userText string) (string, error) {
	messages := make([]message, 0, len(history)+2)
	messages = append(messages, message{Role: roleSystem, Content: constants.ChatSystemPrompt})
	for _, m := range history {
		role := roleAssistant
		if m.Sender == models.SenderUser {
			role = roleUser
		}
		messages = append(messages, message{Role: role, Content: m.Text})
	}
	messages = append(messages, message{Role: roleUser, Content: userText})

	payload, err := json.Marshal(completionRequest{Model: r.model, Messages: messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("completion returned empty content")
	}
	return text, nil
}
