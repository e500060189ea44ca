package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL      = "https://router.huggingface.co/hf-inference/models/deepseek-ai/DeepSeek-R1-Distill-Qwen-32B/v1"
	DefaultModel        = "deepseek-ai/DeepSeek-R1-Distill-Qwen-32B"
	DefaultSystemPrompt = "You are a helpful but terse AI assistant who gets straight to the point."
	DefaultMaxTokens    = 500
)

var (
	ErrMissingAPIKey        = errors.New("HF_API_KEY is required")
	ErrMissingTelegramToken = errors.New("TELEGRAM_BOT_TOKEN is required")
)

type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	SystemPrompt   string
	Temperature    float32
	MaxTokens      int
	Timeout        time.Duration
	TelegramToken  string
	AdminUserIDs   []int64
	AllowedUserIDs []int64
	ContextLimit   int
	ContextTTL     time.Duration
	Debug          bool
}

// fileConfig mirrors the optional TOML file. Pointer fields distinguish
// "unset" from an explicit zero such as temperature = 0.0.
type fileConfig struct {
	Model             string   `toml:"model"`
	BaseURL           string   `toml:"base_url"`
	SystemPrompt      string   `toml:"system_prompt"`
	Temperature       *float64 `toml:"temperature"`
	MaxTokens         *int     `toml:"max_tokens"`
	TimeoutSeconds    *int     `toml:"timeout_seconds"`
	ContextLimit      *int     `toml:"context_limit"`
	ContextTTLMinutes *int     `toml:"context_ttl_minutes"`
}

// Load reads envPath into the process environment (existing variables win),
// applies tomlPath when it is not empty, then lets environment variables
// override both. Missing credentials are not an error here; commands that
// need them call RequireAPIKey or RequireTelegramToken.
func Load(envPath, tomlPath string, log *zap.Logger) (Config, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			log.Debug("could not read env file", zap.String("path", envPath), zap.Error(err))
		}
	}

	cfg := Config{
		BaseURL:      DefaultBaseURL,
		Model:        DefaultModel,
		SystemPrompt: DefaultSystemPrompt,
		Temperature:  0,
		MaxTokens:    DefaultMaxTokens,
		ContextLimit: 20,
		ContextTTL:   120 * time.Minute,
	}

	if tomlPath != "" {
		if err := applyFile(&cfg, tomlPath); err != nil {
			return cfg, err
		}
	}

	e := envReader{log: log}
	cfg.Model = e.getenvDefault("LEARNLOG_MODEL", cfg.Model)
	cfg.BaseURL = e.getenvDefault("LEARNLOG_BASE_URL", cfg.BaseURL)
	cfg.SystemPrompt = e.getenvDefault("LEARNLOG_SYSTEM_PROMPT", cfg.SystemPrompt)
	cfg.Temperature = float32(e.getenvFloatDefault("LEARNLOG_TEMPERATURE", float64(cfg.Temperature)))
	cfg.MaxTokens = e.getenvIntDefault("LEARNLOG_MAX_TOKENS", cfg.MaxTokens)
	cfg.Timeout = time.Duration(e.getenvIntDefault("LEARNLOG_TIMEOUT_SECONDS", int(cfg.Timeout/time.Second))) * time.Second
	cfg.ContextLimit = e.getenvIntDefault("CONTEXT_MESSAGE_LIMIT", cfg.ContextLimit)
	cfg.ContextTTL = time.Duration(e.getenvIntDefault("CONTEXT_TTL_MINUTES", int(cfg.ContextTTL/time.Minute))) * time.Minute
	cfg.Debug = e.getenvBoolDefault("LEARNLOG_DEBUG", false)

	cfg.APIKey = strings.TrimSpace(os.Getenv("HF_API_KEY"))
	cfg.TelegramToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	cfg.AdminUserIDs = e.parseIDs("ADMIN_USER_IDS")
	cfg.AllowedUserIDs = e.parseIDs("ALLOWED_TELEGRAM_USER_IDS")

	if cfg.MaxTokens <= 0 {
		return cfg, fmt.Errorf("max tokens must be positive, got %d", cfg.MaxTokens)
	}
	return cfg, nil
}

func (c Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func (c Config) RequireTelegramToken() error {
	if c.TelegramToken == "" {
		return ErrMissingTelegramToken
	}
	return nil
}

func applyFile(cfg *Config, path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("could not decode config file %s: %w", path, err)
	}
	if fc.Model != "" {
		cfg.Model = fc.Model
	}
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.SystemPrompt != "" {
		cfg.SystemPrompt = fc.SystemPrompt
	}
	if fc.Temperature != nil {
		cfg.Temperature = float32(*fc.Temperature)
	}
	if fc.MaxTokens != nil {
		cfg.MaxTokens = *fc.MaxTokens
	}
	if fc.TimeoutSeconds != nil {
		cfg.Timeout = time.Duration(*fc.TimeoutSeconds) * time.Second
	}
	if fc.ContextLimit != nil {
		cfg.ContextLimit = *fc.ContextLimit
	}
	if fc.ContextTTLMinutes != nil {
		cfg.ContextTTL = time.Duration(*fc.ContextTTLMinutes) * time.Minute
	}
	return nil
}

type envReader struct {
	log *zap.Logger
}

func (e envReader) getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func (e envReader) getenvIntDefault(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.log.Warn("invalid int, using default", zap.String("key", key), zap.String("value", v), zap.Int("default", def))
		return def
	}
	return n
}

func (e envReader) getenvFloatDefault(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		e.log.Warn("invalid float, using default", zap.String("key", key), zap.String("value", v), zap.Float64("default", def))
		return def
	}
	return f
}

func (e envReader) getenvBoolDefault(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.log.Warn("invalid bool, using default", zap.String("key", key), zap.String("value", v))
		return def
	}
	return b
}

func (e envReader) parseIDs(key string) []int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			e.log.Warn("skipping user id", zap.String("key", key), zap.String("value", p), zap.Error(err))
			continue
		}
		ids = append(ids, v)
	}
	return ids
}
