package runtimeinit

import (
	"fmt"
	"log"

	"kagerou-screenshot/src/config"
	"kagerou-screenshot/src/screenshot"
)

type Options struct {
	SetupLogging func(bool)
	LogDisplays  func()
	// Notes are startup lines gathered before logging was configured.
	Notes []string
}

// Bootstrap loads configuration and prepares logging. Nothing here touches
// the hotkey or the clipboard.
func Bootstrap(opts Options) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if opts.SetupLogging != nil {
		opts.SetupLogging(cfg.EnableFileLogging)
	}
	log.Printf("kagerou-screenshot starting: window %q, hotkey %s", cfg.WindowTitle, cfg.Hotkey)
	for _, note := range opts.Notes {
		log.Print(note)
	}

	logDisplays := opts.LogDisplays
	if logDisplays == nil {
		logDisplays = screenshot.LogDisplays
	}
	logDisplays()

	return cfg, nil
}
