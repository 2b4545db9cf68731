package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot related settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"TELEGRAM_BOT_TOKEN"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// CompanyConfig identifies the agency the assistant speaks for.
type CompanyConfig struct {
	Name string `yaml:"name" envconfig:"COMPANY_NAME"`
}

// AIConfig configures the response provider chain.
type AIConfig struct {
	OpenAIAPIKey string `yaml:"openai_api_key" envconfig:"OPENAI_API_KEY"`
	OpenAIModel  string `yaml:"openai_model" envconfig:"OPENAI_MODEL"`
	UseOllama    bool   `yaml:"use_ollama" envconfig:"USE_OLLAMA"`
	OllamaModel  string `yaml:"ollama_model" envconfig:"OLLAMA_MODEL"`
	OllamaURL    string `yaml:"ollama_url" envconfig:"OLLAMA_URL"`
	// RequestTimeoutSeconds bounds a single provider call; 0 -> default (60s).
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" envconfig:"AI_REQUEST_TIMEOUT_SECONDS"`
}

// LeadsConfig points at the append-only lead log.
type LeadsConfig struct {
	CSVPath string `yaml:"csv_path" envconfig:"LEADS_CSV_PATH"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// UpdateCallback identifies callback updates for rate limit exclusions.
	UpdateCallback = "callback"
	// UpdateMessage identifies message updates for rate limit exclusions.
	UpdateMessage = "message"
)

// RateLimitConfig holds settings for rate limiting.
// ExcludeUpdates accepts update types to bypass limiting:
// - "callback": Telegram callback button presses
// - "message": standard text messages
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// Config aggregates the full application configuration.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Company   CompanyConfig   `yaml:"company"`
	AI        AIConfig        `yaml:"ai"`
	Leads     LeadsConfig     `yaml:"leads"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// AIRequestTimeout returns the provider call timeout as a duration.
func (c *Config) AIRequestTimeout() time.Duration {
	if c.AI.RequestTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.AI.RequestTimeoutSeconds) * time.Second
}

// Load reads configuration from a YAML file and environment variables.
// The YAML file is optional: when absent, defaults plus environment apply.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case os.IsNotExist(err):
		// env-only configuration
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if strings.TrimSpace(cfg.Company.Name) == "" {
		cfg.Company.Name = "Software Agency"
	}
	if strings.TrimSpace(cfg.AI.OpenAIModel) == "" {
		cfg.AI.OpenAIModel = "gpt-4o-mini"
	}
	if strings.TrimSpace(cfg.AI.OllamaModel) == "" {
		cfg.AI.OllamaModel = "llama3.1"
	}
	if strings.TrimSpace(cfg.AI.OllamaURL) == "" {
		cfg.AI.OllamaURL = "http://127.0.0.1:11434"
	}
	if cfg.AI.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("ai.request_timeout_seconds must be >= 0")
	}
	if strings.TrimSpace(cfg.Leads.CSVPath) == "" {
		cfg.Leads.CSVPath = "leads.csv"
	}

	allowed := map[string]struct{}{
		UpdateCallback: {},
		UpdateMessage:  {},
	}
	for i, v := range cfg.RateLimit.ExcludeUpdates {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := allowed[key]; !ok {
			return fmt.Errorf("invalid rate_limit.exclude_updates value %q; allowed: callback, message", v)
		}
		cfg.RateLimit.ExcludeUpdates[i] = key
	}
	return nil
}
