package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "AI_PROVIDER", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
		"AI_MODEL", "AI_BASE_URL", "AI_MAX_TOKENS", "AI_TEMPERATURE",
		"AI_TIMEOUT_SECONDS", "MEMORY_PROVIDER", "SQLITE_PATH",
		"RATE_LIMIT_CHAT_PER_MINUTE", "RATE_LIMIT_API_PER_MINUTE", "LOG_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.Server.Addr)
	}
	if cfg.AI.Provider != ProviderOpenAI {
		t.Errorf("expected default provider openai, got %q", cfg.AI.Provider)
	}
	if cfg.AI.MaxTokens != 500 || cfg.AI.Temperature != 0.7 {
		t.Errorf("unexpected model defaults: %+v", cfg.AI)
	}
	if cfg.AI.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.AI.Timeout)
	}
	if cfg.Store.Provider != StoreMemory {
		t.Errorf("expected default memory store, got %q", cfg.Store.Provider)
	}
	if cfg.RateLimit.ChatPerMinute != 20 || cfg.RateLimit.APIPerMinute != 100 {
		t.Errorf("unexpected rate-limit defaults: %+v", cfg.RateLimit)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("AI_PROVIDER", "Anthropic")
	t.Setenv("AI_MAX_TOKENS", "250")
	t.Setenv("MEMORY_PROVIDER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/support.db")
	t.Setenv("RATE_LIMIT_CHAT_PER_MINUTE", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected :9090, got %q", cfg.Server.Addr)
	}
	if cfg.AI.Provider != ProviderAnthropic {
		t.Errorf("expected lowercased provider, got %q", cfg.AI.Provider)
	}
	if cfg.AI.MaxTokens != 250 {
		t.Errorf("expected 250 max tokens, got %d", cfg.AI.MaxTokens)
	}
	if cfg.Store.Provider != StoreSQLite || cfg.Store.Path != "/tmp/support.db" {
		t.Errorf("unexpected store config: %+v", cfg.Store)
	}
	if cfg.RateLimit.ChatPerMinute != 5 {
		t.Errorf("expected chat limit 5, got %d", cfg.RateLimit.ChatPerMinute)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid PORT")
	}

	clearEnv(t)
	t.Setenv("MEMORY_PROVIDER", "redis")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown MEMORY_PROVIDER")
	}

	clearEnv(t)
	t.Setenv("AI_MAX_TOKENS", "lots")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric AI_MAX_TOKENS")
	}
}

func TestAIConfigEnabled(t *testing.T) {
	cases := []struct {
		cfg  AIConfig
		want bool
	}{
		{AIConfig{Provider: ProviderMock}, true},
		{AIConfig{Provider: ProviderOpenAI}, false},
		{AIConfig{Provider: ProviderOpenAI, OpenAIKey: "k"}, true},
		{AIConfig{Provider: ProviderAnthropic, AnthropicKey: "k"}, true},
		{AIConfig{Provider: "other"}, false},
	}

	for _, tc := range cases {
		if got := tc.cfg.Enabled(); got != tc.want {
			t.Errorf("Enabled() for provider %q = %v, want %v", tc.cfg.Provider, got, tc.want)
		}
	}
}

func TestAIConfigValidate(t *testing.T) {
	if problems := (AIConfig{Provider: ProviderMock}).Validate(); len(problems) != 0 {
		t.Fatalf("expected mock provider to validate, got %v", problems)
	}

	problems := (AIConfig{Provider: ProviderOpenAI}).Validate()
	if len(problems) != 1 || !strings.Contains(problems[0], "OPENAI_API_KEY") {
		t.Fatalf("expected a missing-key problem, got %v", problems)
	}
}
