package openai

import (
	"context"
	"math"
	"net/http"

	openaiapi "github.com/sashabaranov/go-openai"

	"learnlog/internal/config"
	"learnlog/internal/usecase/chat"
)

// api is the subset of *openaiapi.Client the adapter uses.
type api interface {
	CreateChatCompletion(ctx context.Context, req openaiapi.ChatCompletionRequest) (openaiapi.ChatCompletionResponse, error)
}

type Client struct {
	api api
}

// NewClient builds a client for any OpenAI-compatible endpoint at cfg.BaseURL.
func NewClient(cfg config.Config) *Client {
	apiCfg := openaiapi.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		api: openaiapi.NewClientWithConfig(apiCfg),
	}
}

func (c *Client) Complete(ctx context.Context, req chat.CompletionRequest) (chat.Completion, error) {
	apiReq := openaiapi.ChatCompletionRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: wireTemperature(req.Temperature),
		Stream:      false,
		Messages:    toAPIMessages(req.Messages),
	}

	resp, err := c.api.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		return chat.Completion{}, err
	}

	if len(resp.Choices) == 0 {
		return chat.Completion{}, chat.ErrEmptyCompletion
	}

	return chat.Completion{
		Text: resp.Choices[0].Message.Content,
		Usage: chat.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// wireTemperature keeps an explicit zero on the wire: go-openai tags the
// field omitempty, and an omitted temperature means the provider default.
func wireTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

func toAPIMessages(msgs []chat.Message) []openaiapi.ChatCompletionMessage {
	res := make([]openaiapi.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, openaiapi.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Text,
		})
	}
	return res
}
