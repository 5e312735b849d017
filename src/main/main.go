package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"kagerou-screenshot/src/capture"
	"kagerou-screenshot/src/config"
	"kagerou-screenshot/src/eventloop"
	"kagerou-screenshot/src/hotkey"
	"kagerou-screenshot/src/logutil"
	"kagerou-screenshot/src/notification"
	"kagerou-screenshot/src/runtimeinit"
	"kagerou-screenshot/src/screenshot"
	"kagerou-screenshot/src/tray"
	"kagerou-screenshot/src/winapi"
)

func main() {
	// Ensure DPI awareness before creating any windows or querying window rects
	dpi := enableDPIAwareness()

	// The hotkey, the message window and the message queue all belong to
	// the thread that creates them.
	runtime.LockOSThread()

	os.Exit(run(dpi))
}

// deps are the platform pieces serve works against.
type deps struct {
	api      winapi.API
	reporter capture.Reporter
	locate   capture.DisplayLocator
}

func run(dpi string) int {
	cfg, err := runtimeinit.Bootstrap(runtimeinit.Options{
		SetupLogging: logutil.Setup,
		LogDisplays:  screenshot.LogDisplays,
		Notes:        []string{"DPI awareness: " + dpi},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	if cfg.EnableTray {
		go tray.Run(tray.Config{
			Title:   "kagerou-screenshot",
			Tooltip: fmt.Sprintf("Press %s to copy %q to the clipboard", cfg.Hotkey, cfg.WindowTitle),
			OnExit:  cancel,
		})
		defer tray.Quit()
	}

	return serve(ctx, cfg, deps{
		api:      winapi.New(),
		reporter: notification.Reporter(cfg.DialogCaption),
		locate:   screenshot.Locate,
	})
}

// serve registers the hotkey and pumps messages until shutdown. It returns
// the process exit status: 1 when startup fails, 0 otherwise.
func serve(ctx context.Context, cfg *config.Config, d deps) int {
	fail := func(err error) int {
		log.Printf("startup failed: %+v", err)
		d.reporter.Report(err)
		return 1
	}

	combo, err := hotkey.Parse(cfg.Hotkey)
	if err != nil {
		return fail(err)
	}

	c := capture.New(d.api, cfg.WindowTitle, d.reporter)
	c.SetDisplayLocator(d.locate)

	loop := eventloop.New(d.api, combo, c)
	if err := loop.Start(); err != nil {
		return fail(err)
	}
	defer loop.Close()

	log.Printf("Listening for %s", cfg.Hotkey)
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("event loop stopped: %v", err)
	}
	return 0
}
