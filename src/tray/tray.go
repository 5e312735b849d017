package tray

import "runtime"

// Config describes the notification-area icon.
type Config struct {
	Title   string
	Tooltip string
	// OnExit runs once when the user picks "Exit" or the tray shuts down.
	OnExit func()
}

// Run shows the icon and blocks until Quit is called or the user picks Exit.
// The icon's window and its message loop live on the calling goroutine's OS
// thread, so run it on its own goroutine.
func Run(cfg Config) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	run(cfg)
}
