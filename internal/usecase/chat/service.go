package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"learnlog/internal/config"
	"learnlog/internal/domain"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEmptyCompletion = errors.New("completion returned no choices")
)

// CompletionError wraps any failure of the remote call.
type CompletionError struct {
	Model string
	Err   error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion with model %s failed: %v", e.Model, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (Completion, error)
}

type CompletionRequest struct {
	Model       string
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

type Message struct {
	Role string
	Text string
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type Completion struct {
	Text  string
	Usage Usage
}

// HistoryResponder answers a prompt in the context of earlier turns. The
// Telegram bot and the interactive chat command depend on it rather than on
// *Service.
type HistoryResponder interface {
	GetResponseWithHistory(ctx context.Context, prompt string, history []domain.Turn) (string, error)
}

var _ HistoryResponder = (*Service)(nil)

type Service struct {
	client Client
	cfg    config.Config
	log    *zap.Logger
}

func NewService(client Client, cfg config.Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		client: client,
		cfg:    cfg,
		log:    log,
	}
}

// GetResponse sends prompt as the single user message and returns the text
// of the first choice.
func (s *Service) GetResponse(ctx context.Context, prompt string) (string, error) {
	if err := validatePrompt(prompt); err != nil {
		return "", err
	}
	return s.complete(ctx, prompt)
}

// GetResponseWithHistory flattens history in front of prompt and sends the
// result as one user message.
func (s *Service) GetResponseWithHistory(ctx context.Context, prompt string, history []domain.Turn) (string, error) {
	if err := validatePrompt(prompt); err != nil {
		return "", err
	}
	return s.complete(ctx, FormatHistory(history, prompt))
}

// FormatHistory joins each turn's messages with a newline, separates turns
// with a blank line and appends a blank line plus prompt. An empty history
// yields prompt unchanged, not prompt preceded by a blank line, so a first
// message goes out exactly as typed.
func FormatHistory(history []domain.Turn, prompt string) string {
	if len(history) == 0 {
		return prompt
	}

	var b strings.Builder
	for i, t := range history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(t.User)
		b.WriteString("\n")
		b.WriteString(t.Assistant)
	}
	b.WriteString("\n\n")
	b.WriteString(prompt)
	return b.String()
}

func (s *Service) complete(ctx context.Context, content string) (string, error) {
	reqID := uuid.NewString()
	log := s.log.With(zap.String("request_id", reqID), zap.String("model", s.cfg.Model))
	start := time.Now()

	resp, err := s.client.Complete(ctx, CompletionRequest{
		Model: s.cfg.Model,
		Messages: []Message{
			{Role: domain.RoleSystem, Text: s.cfg.SystemPrompt},
			{Role: domain.RoleUser, Text: content},
		},
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		log.Debug("completion failed", zap.Duration("latency", time.Since(start)), zap.Error(err))
		return "", &CompletionError{Model: s.cfg.Model, Err: err}
	}

	log.Debug("completion done",
		zap.Duration("latency", time.Since(start)),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return resp.Text, nil
}

func validatePrompt(prompt string) error {
	if !utf8.ValidString(prompt) {
		return fmt.Errorf("%w: prompt must be UTF-8 text", ErrInvalidArgument)
	}
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("%w: prompt must not be empty", ErrInvalidArgument)
	}
	return nil
}
