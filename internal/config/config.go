package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider names accepted in AI_PROVIDER.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderMock      = "mock"
)

// Store backends accepted in MEMORY_PROVIDER.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config aggregates all process-lifetime settings. It is constructed once
// at startup and passed explicitly into the components that need it.
type Config struct {
	Server    ServerConfig
	AI        AIConfig
	Store     StoreConfig
	RateLimit RateLimitConfig
	LogDir    string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	store, err := loadStoreConfig()
	if err != nil {
		return nil, err
	}

	rateLimit, err := loadRateLimitConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		AI:        ai,
		Store:     store,
		RateLimit: rateLimit,
		LogDir:    getEnvOrDefault("LOG_DIR", "./logs"),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if _, err := strconv.Atoi(port); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid PORT value %q: %w", port, err)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig describes the model provider.
type AIConfig struct {
	Provider     string
	OpenAIKey    string
	AnthropicKey string
	Model        string
	BaseURL      string
	MaxTokens    int
	Temperature  float64
	Timeout      time.Duration
}

// Enabled reports whether credentials for the selected provider are
// present. A disabled provider makes the service fall back to the
// deterministic mock.
func (c AIConfig) Enabled() bool {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIKey != ""
	case ProviderAnthropic:
		return c.AnthropicKey != ""
	case ProviderMock:
		return true
	default:
		return false
	}
}

// Validate returns the configuration problems that would make the selected
// provider unusable. An empty slice means healthy.
func (c AIConfig) Validate() []string {
	var problems []string
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIKey == "" {
			problems = append(problems, "OPENAI_API_KEY is not configured; set a valid key or switch AI_PROVIDER")
		}
	case ProviderAnthropic:
		if c.AnthropicKey == "" {
			problems = append(problems, "ANTHROPIC_API_KEY is not configured; set a valid key or switch AI_PROVIDER")
		}
	case ProviderMock:
	default:
		problems = append(problems, fmt.Sprintf("AI_PROVIDER must be %q, %q or %q, got %q",
			ProviderOpenAI, ProviderAnthropic, ProviderMock, c.Provider))
	}
	return problems
}

func loadAIConfig() (AIConfig, error) {
	maxTokens := 500
	if override, err := parseOptionalIntEnv("AI_MAX_TOKENS"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		maxTokens = *override
	}

	temperature := 0.7
	if override, err := parseOptionalFloatEnv("AI_TEMPERATURE"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		temperature = *override
	}

	timeoutSeconds := 30
	if override, err := parseOptionalIntEnv("AI_TIMEOUT_SECONDS"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		timeoutSeconds = *override
	}

	return AIConfig{
		Provider:     strings.ToLower(getEnvOrDefault("AI_PROVIDER", ProviderOpenAI)),
		OpenAIKey:    strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		AnthropicKey: strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")),
		Model:        strings.TrimSpace(os.Getenv("AI_MODEL")),
		BaseURL:      strings.TrimSpace(os.Getenv("AI_BASE_URL")),
		MaxTokens:    maxTokens,
		Temperature:  temperature,
		Timeout:      time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Provider string
	Path     string
}

func loadStoreConfig() (StoreConfig, error) {
	provider := strings.ToLower(getEnvOrDefault("MEMORY_PROVIDER", StoreMemory))
	if provider != StoreSQLite && provider != StoreMemory {
		return StoreConfig{}, fmt.Errorf("MEMORY_PROVIDER must be %q or %q, got %q", StoreSQLite, StoreMemory, provider)
	}
	return StoreConfig{
		Provider: provider,
		Path:     getEnvOrDefault("SQLITE_PATH", "./support.db"),
	}, nil
}

// RateLimitConfig holds the fixed-window limits for the two limiter
// instances.
type RateLimitConfig struct {
	ChatPerMinute int
	APIPerMinute  int
}

func loadRateLimitConfig() (RateLimitConfig, error) {
	chat := 20
	if override, err := parseOptionalIntEnv("RATE_LIMIT_CHAT_PER_MINUTE"); err != nil {
		return RateLimitConfig{}, err
	} else if override != nil {
		chat = *override
	}

	api := 100
	if override, err := parseOptionalIntEnv("RATE_LIMIT_API_PER_MINUTE"); err != nil {
		return RateLimitConfig{}, err
	} else if override != nil {
		api = *override
	}

	return RateLimitConfig{ChatPerMinute: chat, APIPerMinute: api}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
