package ai

import (
	"context"
	"log/slog"
	"time"

	"github.com/m3rciful/leadbot/core/logger"
	"github.com/m3rciful/leadbot/internal/memory"
)

// Chain tries providers in order and returns the first successful reply.
type Chain struct {
	companyName string
	providers   []Provider
	timeout     time.Duration
}

// ChainOptions configure NewChain.
type ChainOptions struct {
	CompanyName string
	Providers   []Provider
	// Timeout bounds each individual provider call.
	Timeout time.Duration
}

// NewChain builds a chain. The offline template is always appended last
// so Reply cannot fail.
func NewChain(opts ChainOptions) *Chain {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	providers := make([]Provider, 0, len(opts.Providers)+1)
	providers = append(providers, opts.Providers...)
	providers = append(providers, NewOfflineProvider(opts.CompanyName))
	return &Chain{
		companyName: opts.CompanyName,
		providers:   providers,
		timeout:     timeout,
	}
}

// Reply generates an answer for userText given the stored transcript.
// Provider failures are logged and absorbed; the returned provider name
// reports which link produced the reply.
func (c *Chain) Reply(ctx context.Context, userText string, transcript []memory.Entry) (string, string) {
	messages := BuildPrompt(c.companyName, transcript, userText)

	for _, p := range c.providers {
		start := time.Now()
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		reply, err := p.Generate(callCtx, messages)
		cancel()

		if err != nil {
			logger.AI.LogAttrs(ctx, slog.LevelWarn, "provider failed",
				slog.String("event", "generate"),
				slog.String("provider", p.Name()),
				slog.String("outcome", "fail"),
				slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
				slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			)
			continue
		}

		logger.AI.LogAttrs(ctx, slog.LevelInfo, "reply generated",
			slog.String("event", "generate"),
			slog.String("provider", p.Name()),
			slog.String("outcome", "ok"),
			slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
		)
		return reply, p.Name()
	}

	// Unreachable: the offline provider never fails.
	return "", ""
}

// BuildProviders constructs the configured provider order.
func BuildProviders(openaiKey, openaiModel string, useOllama bool, ollamaURL, ollamaModel string, timeout time.Duration) []Provider {
	var providers []Provider
	if openaiKey != "" {
		providers = append(providers, NewOpenAIProvider(openaiKey, openaiModel))
	}
	if useOllama {
		providers = append(providers, NewOllamaProvider(ollamaURL, ollamaModel, timeout))
	}
	return providers
}
