package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc"},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run mode = %q", cfg.Telegram.RunMode)
	}
	if cfg.Company.Name != "Software Agency" {
		t.Fatalf("company name = %q", cfg.Company.Name)
	}
	if cfg.AI.OpenAIModel != "gpt-4o-mini" || cfg.AI.OllamaModel != "llama3.1" {
		t.Fatalf("ai defaults = %q / %q", cfg.AI.OpenAIModel, cfg.AI.OllamaModel)
	}
	if cfg.AI.OllamaURL != "http://127.0.0.1:11434" {
		t.Fatalf("ollama url = %q", cfg.AI.OllamaURL)
	}
	if cfg.Leads.CSVPath != "leads.csv" {
		t.Fatalf("csv path = %q", cfg.Leads.CSVPath)
	}
	if got := cfg.AIRequestTimeout(); got != 60*time.Second {
		t.Fatalf("timeout = %v", got)
	}
}

func TestNormalizeRequiresToken(t *testing.T) {
	cfg := &Config{}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestNormalizePollingAlias(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "Polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run mode = %q", cfg.Telegram.RunMode)
	}
}

func TestNormalizeWebhookRequiresEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	err := Normalize(cfg)
	if err == nil || !strings.Contains(err.Error(), "webhook.url") {
		t.Fatalf("expected webhook.url error, got %v", err)
	}
}

func TestNormalizeRateLimitExclusions(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", "message"}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.RateLimit.ExcludeUpdates[0] != UpdateCallback {
		t.Fatalf("exclusion not normalized: %v", cfg.RateLimit.ExcludeUpdates)
	}

	cfg = validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"inline"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unknown exclusion")
	}
}

func TestAIRequestTimeoutOverride(t *testing.T) {
	cfg := validConfig()
	cfg.AI.RequestTimeoutSeconds = 5
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got := cfg.AIRequestTimeout(); got != 5*time.Second {
		t.Fatalf("timeout = %v", got)
	}
}
