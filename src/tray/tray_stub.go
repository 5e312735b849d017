//go:build !windows

package tray

import "log"

var quit = make(chan struct{}, 1)

// There is no notification area outside Windows.
func run(cfg Config) {
	log.Printf("tray: not available, %q runs without an icon", cfg.Title)
	<-quit
	if cfg.OnExit != nil {
		cfg.OnExit()
	}
}

// Quit makes Run return.
func Quit() {
	select {
	case quit <- struct{}{}:
	default:
	}
}
