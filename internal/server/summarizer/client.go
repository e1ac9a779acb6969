// Package summarizer streams page summaries from an OpenAI-compatible chat
// completion API.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a helpful assistant that summarizes PDF page content. " +
	"Provide clear, concise summaries highlighting the key points."

type Client struct {
	api       *openai.Client
	model     string
	maxTokens int
}

// NewClient talks to baseURL (empty means the public OpenAI endpoint).
func NewClient(baseURL, apiKey, model string, maxTokens int) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:       openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Prompt is the user message sent for one page.
func Prompt(pageContent string, pageNumber int) string {
	return fmt.Sprintf("Please summarize the following content from page %d:\n\n%s", pageNumber, pageContent)
}

// Stream starts a completion for prompt. The caller must Close the stream.
func (c *Client) Stream(ctx context.Context, prompt string) (*Stream, error) {
	req := openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Stream:    true,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	s, err := c.api.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("start completion stream: %w", err)
	}
	return &Stream{s: s}, nil
}

// Stream yields text deltas in order.
type Stream struct {
	s *openai.ChatCompletionStream
}

// Recv returns the next non-empty chunk, or io.EOF when the model is done.
func (s *Stream) Recv() (string, error) {
	for {
		resp, err := s.s.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", io.EOF
			}
			return "", fmt.Errorf("completion stream: %w", err)
		}
		for _, ch := range resp.Choices {
			if ch.Delta.Content != "" {
				return ch.Delta.Content, nil
			}
		}
	}
}

func (s *Stream) Close() error {
	return s.s.Close()
}
