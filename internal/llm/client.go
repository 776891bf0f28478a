// Package llm drives the chat-completion API that rewrites the hottest
// function. The completion contract is strict: one behavior-preserving Python
// function, plain source only.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyCompletion indicates the model returned no usable choice.
var ErrEmptyCompletion = errors.New("llm: empty completion")

const (
	defaultBaseURL = "https://api.deepseek.com"
	defaultModel   = "deepseek-chat"
)

// stopTokens end generation early; if any of them still leaks into the
// answer, one cleanup round-trip is attempted.
var stopTokens = []string{"```", "###", "Explanation", "Here is"}

const systemPrompt = `You are a senior Python performance engineer.
You must refactor the given Python function to improve runtime performance
while preserving behavior exactly.

Strict rules:
- Keep the function name identical
- Keep the argument list identical (names, order, defaults)
- Do NOT add decorators
- Do NOT add new helper functions or classes
- Do NOT add or remove imports
- Do NOT change return type or side effects
- Do NOT use eval, exec, globals, or reflection
- The function must be compatible with CPython
- Output ONLY a single valid Python function
- No comments, no markdown, no explanations, no extra text
- Output plain Python source code only
- Use more optimal algorithms for solution`

// Client requests refactored function bodies from a DeepSeek-compatible
// chat-completion endpoint.
type Client struct {
	api   *openai.Client
	model string
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the completion model.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// NewClient builds a client for the DeepSeek endpoint with the given key.
func NewClient(apiKey string, opts ...Option) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = defaultBaseURL
	c := &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: defaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RefactorFunction asks the model for an optimized rewrite of the given
// function source. When stop-token noise survives into the answer, one
// follow-up request asks for a cleaned version.
func (c *Client) RefactorFunction(ctx context.Context, code string) (string, error) {
	prompt := BuildPrompt(code)

	result, err := c.complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	if ContainsStopToken(result) {
		slog.Warn("completion contains stop-token noise, requesting cleanup")
		prompt += "\nRemove any symbols like ``` ### Explanation Here is and return only the valid Python function code."
		result, err = c.complete(ctx, prompt)
		if err != nil {
			return "", err
		}
	}
	return result, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	slog.Debug("requesting refactor completion", "model", c.model)
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0,
		Stop:        stopTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

// BuildPrompt wraps the function source in the refactor instruction.
func BuildPrompt(code string) string {
	return "Refactor the most time-consuming function based on py-spy output to improve performance without changing behavior.\nInput:\n" + code
}

// ContainsStopToken reports whether any generation stop token appears in s.
func ContainsStopToken(s string) bool {
	for _, tok := range stopTokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
