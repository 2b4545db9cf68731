// Package bootstrap initializes shared infrastructure before the bot
// loop starts: the logger and the lead log file.
package bootstrap

import (
	"fmt"

	coreconfig "github.com/m3rciful/leadbot/core/config"
	"github.com/m3rciful/leadbot/core/logger"
	"github.com/m3rciful/leadbot/internal/leads"
)

// Options control the bootstrap pipeline.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	OpenStore  func(path string) (*leads.Store, error)
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	Store *leads.Store
}

// Run initializes the logger and prepares the lead store for appends.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	openStore := opts.OpenStore
	if openStore == nil {
		openStore = defaultOpenStore
	}
	store, err := openStore(opts.Config.Leads.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: lead store initialization failed: %w", err)
	}

	return &Result{Store: store}, nil
}

func defaultOpenStore(path string) (*leads.Store, error) {
	store := leads.NewStore(path)
	if err := store.EnsureInitialized(); err != nil {
		return nil, err
	}
	return store, nil
}
