// file: internals/features/assistant/service/assistant_service.go
package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	assistantDTO "classku_backend/internals/features/assistant/dto"
	configs "classku_backend/internals/configs"
)

// Client talks to the external generative-text API. One attempt per call,
// bounded by the HTTP client timeout; callers map failures to 502.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	HTTP    *http.Client
}

func NewClientFromEnv() *Client {
	return &Client{
		BaseURL: strings.TrimRight(configs.AIServiceURL, "/"),
		APIKey:  configs.AIServiceKey,
		Model:   configs.AIServiceModel,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (cl *Client) Enabled() bool {
	return cl.BaseURL != "" && cl.APIKey != ""
}

/* =========================================================
   Wire types (chat-completions shaped)
========================================================= */

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (cl *Client) complete(ctx context.Context, system, user string) (string, error) {
	if !cl.Enabled() {
		return "", fmt.Errorf("assistant service is not configured")
	}

	payload := completionRequest{
		Model: cl.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
	}
	body, err := sonic.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		cl.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cl.APIKey)

	resp, err := cl.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant upstream status %d", resp.StatusCode)
	}

	var out completionResponse
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("assistant response decode: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("assistant upstream: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("assistant returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

/* =========================================================
   High-level operations
========================================================= */

func (cl *Client) Chat(ctx context.Context, message string, role string, subject *string) (string, error) {
	system := "You are a helpful study assistant for a classroom app. The user is a " + role + "."
	if subject != nil && *subject != "" {
		system += " The current subject is " + *subject + "."
	}
	return cl.complete(ctx, system, message)
}

func (cl *Client) GenerateQuiz(ctx context.Context, topic, difficulty string, count int) (*assistantDTO.GeneratedQuiz, error) {
	system := "You generate quizzes. Respond with JSON only, shaped as " +
		`{"topic":"...","questions":[{"question":"...","options":["..."],"correct_answer":0,"explanation":"..."}]}` +
		" with no surrounding prose."
	user := fmt.Sprintf("Create a %s quiz with %d multiple-choice questions about: %s", difficulty, count, topic)

	raw, err := cl.complete(ctx, system, user)
	if err != nil {
		return nil, err
	}
	return ParseQuizJSON(raw)
}

func (cl *Client) Summarize(ctx context.Context, text string) (string, error) {
	system := "Summarize the given study material in a few short paragraphs for students."
	return cl.complete(ctx, system, text)
}

/* =========================================================
   Response parsing
========================================================= */

// StripMarkdownFences removes a leading ```json / ``` fence pair so fenced
// model output still parses as JSON.
func StripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		// drop the language tag line ("json", "JSON", empty)
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseQuizJSON decodes model output into a quiz, tolerating markdown fences.
func ParseQuizJSON(raw string) (*assistantDTO.GeneratedQuiz, error) {
	cleaned := StripMarkdownFences(raw)

	var quiz assistantDTO.GeneratedQuiz
	if err := sonic.Unmarshal([]byte(cleaned), &quiz); err != nil {
		return nil, fmt.Errorf("quiz decode: %w", err)
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("quiz has no questions")
	}
	for i, q := range quiz.Questions {
		if q.Question == "" || len(q.Options) < 2 {
			return nil, fmt.Errorf("quiz question %d is malformed", i)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, fmt.Errorf("quiz question %d has an out-of-range answer", i)
		}
	}
	return &quiz, nil
}
