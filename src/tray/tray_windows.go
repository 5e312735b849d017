//go:build windows

package tray

import (
	"log"

	"github.com/getlantern/systray"
)

func run(cfg Config) {
	systray.Run(func() { onReady(cfg) }, func() {
		log.Printf("tray: exited")
		if cfg.OnExit != nil {
			cfg.OnExit()
		}
	})
}

// Quit removes the icon and makes Run return.
func Quit() { systray.Quit() }

func onReady(cfg Config) {
	systray.SetIcon(Icon())
	systray.SetTitle(cfg.Title)
	systray.SetTooltip(cfg.Tooltip)

	exit := systray.AddMenuItem("Exit", "Stop listening for the hotkey")
	go func() {
		<-exit.ClickedCh
		log.Printf("tray: exit selected")
		systray.Quit()
	}()
}
