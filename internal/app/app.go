// Package app wires the lead assistant together: command registry,
// contact flow, service catalog, AI chain and the lead log.
package app

import (
	"fmt"

	coreconfig "github.com/m3rciful/leadbot/core/config"
	coretelegram "github.com/m3rciful/leadbot/core/telegram"
	"github.com/m3rciful/leadbot/core/telegram/commands"
	"github.com/m3rciful/leadbot/core/telegram/router"
	"github.com/m3rciful/leadbot/core/telegram/state"
	"github.com/m3rciful/leadbot/internal/ai"
	"github.com/m3rciful/leadbot/internal/catalog"
	"github.com/m3rciful/leadbot/internal/leads"
	"github.com/m3rciful/leadbot/internal/memory"
)

// App aggregates the bot's long-lived components.
type App struct {
	cfg      *coreconfig.Config
	registry *coretelegram.Registry
	fsm      state.Manager
	services *catalog.Catalog
	store    *leads.Store
	memory   *memory.Transcript
	chain    *ai.Chain
}

// Options configure New.
type Options struct {
	Config *coreconfig.Config
	Store  *leads.Store
	// Providers overrides the configured provider chain, used by tests.
	Providers []ai.Provider
}

// New builds the application from configuration.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config provided")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("app: nil lead store provided")
	}

	providers := opts.Providers
	if providers == nil {
		providers = ai.BuildProviders(
			cfg.AI.OpenAIAPIKey,
			cfg.AI.OpenAIModel,
			cfg.AI.UseOllama,
			cfg.AI.OllamaURL,
			cfg.AI.OllamaModel,
			cfg.AIRequestTimeout(),
		)
	}

	a := &App{
		cfg:      cfg,
		registry: coretelegram.NewRegistry(),
		fsm:      state.NewMemoryManager(),
		services: catalog.Default(),
		store:    opts.Store,
		memory:   memory.NewTranscript(memory.DefaultLimit),
		chain: ai.NewChain(ai.ChainOptions{
			CompanyName: cfg.Company.Name,
			Providers:   providers,
			Timeout:     cfg.AIRequestTimeout(),
		}),
	}

	a.registerCommands()
	a.registerCallbacks()
	a.registerContactFlow()
	a.registry.SetTextFallback(a.handleChat)

	return a, nil
}

// Registry exposes the command registry, used by tests.
func (a *App) Registry() *coretelegram.Registry {
	return a.registry
}

// TelegramRunOptions assembles runtime options for the bot loop.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	routes := router.CommandRoutes(a.registry)
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{}))
	routes = append(routes, router.TextRoute(a.fsm, a.registry, router.TextOptions{}))

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    a.registry,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
	}, nil
}

func (a *App) registerCommands() {
	a.registry.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Greeting and what the bot can do",
	})
	a.registry.RegisterCommand("/services", commands.Command{
		Handler:     a.handleServices,
		Description: "What we build and starting prices",
	})
	a.registry.RegisterCommand("/contact", commands.Command{
		Handler:     a.handleContact,
		Description: "Leave your contact details",
	})
	a.registry.RegisterCommand("/cancel", commands.Command{
		Handler:     a.handleCancel,
		Description: "Cancel the current conversation",
	})
}
