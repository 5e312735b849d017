// Package eventloop owns the global hotkey and the message-only window it is
// registered on, and runs one handler cycle per press.
package eventloop

import (
	"context"
	"errors"
	"log"
	"sync/atomic"

	"kagerou-screenshot/src/failure"
	"kagerou-screenshot/src/hotkey"
	"kagerou-screenshot/src/scope"
	"kagerou-screenshot/src/winapi"
)

// HotkeyID is the id the hotkey is registered under.
const HotkeyID = 1

// ErrNotStarted is returned by Stop before Start has succeeded.
var ErrNotStarted = errors.New("eventloop: not started")

// Handler runs one capture cycle for a hotkey press. owner is the loop's
// message window. A returned error has already been shown to the user; the
// loop only counts it and keeps listening.
type Handler interface {
	Run(owner winapi.HWND) error
}

// Loop is the single-threaded owner of the hotkey registration and the
// message window. Start, Run and Close must be called from the same locked
// OS thread; Stop may be called from anywhere.
type Loop struct {
	api      winapi.Messaging
	combo    hotkey.Combo
	handler  Handler
	window   winapi.HWND
	threadID atomic.Uint32
	presses  int
	failures int
}

// New creates a loop that calls handler for every press of combo.
func New(api winapi.Messaging, combo hotkey.Combo, handler Handler) *Loop {
	return &Loop{api: api, combo: combo, handler: handler}
}

// Start creates the message window and claims the hotkey system-wide. On
// error nothing is left registered.
func (l *Loop) Start() error {
	window, err := l.api.CreateMessageWindow()
	if err := failure.CheckErr(err, "CreateWindowEx"); err != nil {
		return err
	}

	err = l.api.RegisterHotKey(window, HotkeyID, l.combo.Modifiers, l.combo.Key)
	if err := failure.CheckErr(err, "RegisterHotKey"); err != nil {
		l.api.DestroyWindow(window)
		return err
	}

	l.window = window
	l.threadID.Store(l.api.CurrentThreadID())
	log.Printf("eventloop: hotkey %+v registered on window %#x", l.combo, window)
	return nil
}

// Window returns the message window, or 0 before Start.
func (l *Loop) Window() winapi.HWND { return l.window }

// Presses returns how many hotkey events have been handled.
func (l *Loop) Presses() int { return l.presses }

// Failures returns how many handler runs returned an error.
func (l *Loop) Failures() int { return l.failures }

// Run pumps messages until WM_QUIT arrives or ctx is cancelled, running the
// handler synchronously for each hotkey event. Presses that arrive during a
// cycle wait in the queue.
func (l *Loop) Run(ctx context.Context) error {
	if l.window == 0 {
		return ErrNotStarted
	}

	done := make(chan struct{})
	defer scope.New(func() { close(done) }).Release()
	go func() {
		select {
		case <-ctx.Done():
			if err := l.Stop(); err != nil {
				log.Printf("eventloop: stop: %v", err)
			}
		case <-done:
		}
	}()

	var msg winapi.Msg
	for {
		ret, err := l.api.GetMessage(&msg)
		if ret == -1 {
			return failure.CheckErr(err, "GetMessage")
		}
		if ret == 0 {
			log.Printf("eventloop: quit after %d hotkey presses, %d failed", l.presses, l.failures)
			return ctx.Err()
		}

		l.api.TranslateMessage(&msg)
		l.api.DispatchMessage(&msg)

		if msg.Message == winapi.WMHotkey && msg.WParam == HotkeyID {
			l.presses++
			log.Printf("eventloop: hotkey press %d", l.presses)
			if err := l.handler.Run(l.window); err != nil {
				l.failures++
				log.Printf("eventloop: press %d failed: %v", l.presses, err)
			}
		}
	}
}

// Stop asks the pump thread to leave Run.
func (l *Loop) Stop() error {
	id := l.threadID.Load()
	if id == 0 {
		return ErrNotStarted
	}
	return failure.CheckErr(l.api.PostQuit(id), "PostThreadMessage")
}

// Close releases the hotkey and destroys the message window.
func (l *Loop) Close() {
	if l.window == 0 {
		return
	}
	l.api.UnregisterHotKey(l.window, HotkeyID)
	l.api.DestroyWindow(l.window)
	l.window = 0
	l.threadID.Store(0)
}
