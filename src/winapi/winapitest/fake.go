// Package winapitest provides an in-memory winapi.API that records every
// call and tracks live handles, so resource accounting can be checked
// without a Windows desktop.
package winapitest

import (
	"fmt"
	"sync"
	"syscall"

	"kagerou-screenshot/src/winapi"
)

// Error codes used by the fake for diagnostic failures.
const (
	ErrorInvalidWindowHandle = syscall.Errno(1400)
	ErrorAccessDenied        = syscall.Errno(5)
	ErrorHotkeyAlreadyInUse  = syscall.Errno(1409)
	ErrorGenFailure          = syscall.Errno(31)
)

// stockBitmap is the 1x1 bitmap every fresh memory DC starts with.
const stockBitmap winapi.HGDIOBJ = 0x7FFF0000

// Fake implements winapi.API.
//
// Windows maps titles to their rectangles. Fail makes the named operation
// fail ("FindWindow", "GetDC", "SelectObject", ...). SelectGDIError makes
// SelectObject return HGDI_ERROR instead of NULL when it fails.
type Fake struct {
	mu sync.Mutex

	Windows        map[string]winapi.Rect
	Fail           map[string]bool
	SelectGDIError bool

	// Messages is the queue GetMessage drains; an empty queue reads as WM_QUIT.
	Messages []winapi.Msg

	calls      []string
	next       uintptr
	windows    map[winapi.HWND]string
	dcs        map[winapi.HDC]string
	selected   map[winapi.HDC]winapi.HGDIOBJ
	bitmaps    map[winapi.HBITMAP]winapi.Rect
	created    []winapi.Rect
	clipOpen   bool
	clipOwner  winapi.HWND
	clipData   winapi.HBITMAP
	published  []winapi.HBITMAP
	hotkeys    map[int32]winapi.HWND
	msgWindows map[winapi.HWND]bool
	quitPosted int
	violations []string
}

// New returns a fake with the given top-level windows.
func New(windows map[string]winapi.Rect) *Fake {
	if windows == nil {
		windows = map[string]winapi.Rect{}
	}
	return &Fake{
		Windows:    windows,
		Fail:       map[string]bool{},
		next:       0x1000,
		windows:    map[winapi.HWND]string{},
		dcs:        map[winapi.HDC]string{},
		selected:   map[winapi.HDC]winapi.HGDIOBJ{},
		bitmaps:    map[winapi.HBITMAP]winapi.Rect{},
		hotkeys:    map[int32]winapi.HWND{},
		msgWindows: map[winapi.HWND]bool{},
	}
}

func (f *Fake) record(op string) bool {
	f.calls = append(f.calls, op)
	return f.Fail[op]
}

func (f *Fake) handle() uintptr {
	f.next += 0x10
	return f.next
}

func (f *Fake) violate(format string, args ...interface{}) {
	f.violations = append(f.violations, fmt.Sprintf(format, args...))
}

func (f *Fake) FindWindow(title string) (winapi.HWND, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.record("FindWindow") {
		return 0, ErrorInvalidWindowHandle
	}
	if _, ok := f.Windows[title]; !ok {
		return 0, syscall.Errno(0)
	}
	for h, t := range f.windows {
		if t == title {
			return h, nil
		}
	}
	h := winapi.HWND(f.handle())
	f.windows[h] = title
	return h, nil
}

func (f *Fake) GetWindowRect(hwnd winapi.HWND) (winapi.Rect, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.record("GetWindowRect") {
		return winapi.Rect{}, ErrorInvalidWindowHandle
	}
	title, ok := f.windows[hwnd]
	if !ok {
		return winapi.Rect{}, ErrorInvalidWindowHandle
	}
	rc, ok := f.Windows[title]
	if !ok {
		return winapi.Rect{}, ErrorInvalidWindowHandle
	}
	return rc, nil
}

func (f *Fake) GetDC(hwnd winapi.HWND) winapi.HDC {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.record("GetDC") {
		return 0
	}
	dc := winapi.HDC(f.handle())
	f.dcs[dc] = "screen"
	return dc
}

func (f *Fake) ReleaseDC(hwnd winapi.HWND, dc winapi.HDC) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ReleaseDC")
	if f.dcs[dc] != "screen" {
		f.violate("ReleaseDC on %#x which is not a live screen DC", dc)
		return false
	}
	delete(f.dcs, dc)
	return true
}

func (f *Fake) CreateCompatibleDC(dc winapi.HDC) winapi.HDC {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.record("CreateCompatibleDC") {
		return 0
	}
	if _, ok := f.dcs[dc]; !ok {
		f.violate("CreateCompatibleDC from dead DC %#x", dc)
	}
	mem := winapi.HDC(f.handle())
	f.dcs[mem] = "memory"
	f.selected[mem] = stockBitmap
	return mem
}

func (f *Fake) DeleteDC(dc winapi.HDC) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteDC")
	if f.dcs[dc] != "memory" {
		f.violate("DeleteDC on %#x which is not a live memory DC", dc)
		return false
	}
	if f.selected[dc] != stockBitmap {
		f.violate("DeleteDC on %#x with %#x still selected", dc, f.selected[dc])
	}
	delete(f.dcs, dc)
	delete(f.selected, dc)
	return true
}

func (f *Fake) CreateCompatibleBitmap(dc winapi.HDC, width, height int32) winapi.HBITMAP {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.record("CreateCompatibleBitmap") || width <= 0 || height <= 0 {
		return 0
	}
	bm := winapi.HBITMAP(f.handle())
	rc := winapi.Rect{Right: width, Bottom: height}
	f.bitmaps[bm] = rc
	f.created = append(f.created, rc)
	return bm
}

func (f *Fake) SelectObject(dc winapi.HDC, obj winapi.HGDIOBJ) winapi.HGDIOBJ {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.record("SelectObject") {
		if f.SelectGDIError {
			return winapi.HGDIError
		}
		return 0
	}
	prev, ok := f.selected[dc]
	if !ok {
		f.violate("SelectObject on %#x which is not a live memory DC", dc)
		return 0
	}
	f.selected[dc] = obj
	return prev
}

func (f *Fake) DeleteObject(obj winapi.HGDIOBJ) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteObject")
	bm := winapi.HBITMAP(obj)
	if _, ok := f.bitmaps[bm]; !ok {
		f.violate("DeleteObject on %#x which is not a live bitmap", obj)
		return false
	}
	for dc, sel := range f.selected {
		if sel == obj {
			f.violate("DeleteObject on %#x while selected into %#x", obj, dc)
		}
	}
	if f.clipData == bm {
		f.violate("DeleteObject on %#x owned by the clipboard", obj)
	}
	delete(f.bitmaps, bm)
	return true
}

func (f *Fake) BitBlt(dst winapi.HDC, x, y, width, height int32, src winapi.HDC, srcX, srcY int32, rop uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.record("BitBlt") {
		return ErrorGenFailure
	}
	if rop != winapi.SrcCopy {
		f.violate("BitBlt with rop %#x", rop)
	}
	if _, ok := f.bitmaps[winapi.HBITMAP(f.selected[dst])]; !ok {
		f.violate("BitBlt into %#x with no bitmap selected", dst)
	}
	return nil
}

func (f *Fake) OpenClipboard(owner winapi.HWND) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.record("OpenClipboard") {
		return ErrorAccessDenied
	}
	if f.clipOpen {
		f.violate("OpenClipboard while already open")
	}
	f.clipOpen = true
	f.clipOwner = owner
	return nil
}

func (f *Fake) EmptyClipboard() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.record("EmptyClipboard") {
		return ErrorAccessDenied
	}
	if !f.clipOpen {
		f.violate("EmptyClipboard while closed")
	}
	f.clipData = 0
	return nil
}

func (f *Fake) SetClipboardData(format uint32, data winapi.HBITMAP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.record("SetClipboardData") {
		return ErrorAccessDenied
	}
	if !f.clipOpen {
		f.violate("SetClipboardData while closed")
	}
	if format != winapi.CFBitmap {
		f.violate("SetClipboardData with format %d", format)
	}
	if _, ok := f.bitmaps[data]; !ok {
		f.violate("SetClipboardData with dead bitmap %#x", data)
	}
	// The system owns published bitmaps; they leave the live set.
	delete(f.bitmaps, data)
	f.clipData = data
	f.published = append(f.published, data)
	return nil
}

func (f *Fake) CloseClipboard() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CloseClipboard")
	if !f.clipOpen {
		f.violate("CloseClipboard while closed")
		return false
	}
	f.clipOpen = false
	return true
}

func (f *Fake) CreateMessageWindow() (winapi.HWND, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.record("CreateMessageWindow") {
		return 0, ErrorAccessDenied
	}
	h := winapi.HWND(f.handle())
	f.msgWindows[h] = true
	return h, nil
}

func (f *Fake) DestroyWindow(hwnd winapi.HWND) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DestroyWindow")
	if !f.msgWindows[hwnd] {
		f.violate("DestroyWindow on %#x which is not a live window", hwnd)
		return false
	}
	delete(f.msgWindows, hwnd)
	return true
}

func (f *Fake) RegisterHotKey(hwnd winapi.HWND, id int32, modifiers, key uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.record("RegisterHotKey") {
		return ErrorHotkeyAlreadyInUse
	}
	f.hotkeys[id] = hwnd
	return nil
}

func (f *Fake) UnregisterHotKey(hwnd winapi.HWND, id int32) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UnregisterHotKey")
	if f.hotkeys[id] != hwnd {
		f.violate("UnregisterHotKey for unknown id %d", id)
		return false
	}
	delete(f.hotkeys, id)
	return true
}

func (f *Fake) GetMessage(msg *winapi.Msg) (int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.record("GetMessage") {
		return -1, ErrorInvalidWindowHandle
	}
	if len(f.Messages) == 0 {
		*msg = winapi.Msg{Message: winapi.WMQuit}
		return 0, nil
	}
	*msg = f.Messages[0]
	f.Messages = f.Messages[1:]
	if msg.Message == winapi.WMQuit {
		return 0, nil
	}
	return 1, nil
}

func (f *Fake) TranslateMessage(msg *winapi.Msg) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("TranslateMessage")
}

func (f *Fake) DispatchMessage(msg *winapi.Msg) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DispatchMessage")
}

func (f *Fake) CurrentThreadID() uint32 { return 7 }

func (f *Fake) PostQuit(threadID uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.record("PostQuit") {
		return ErrorAccessDenied
	}
	f.quitPosted++
	f.Messages = append(f.Messages, winapi.Msg{Message: winapi.WMQuit})
	return nil
}

// Hotkey queues one WM_HOTKEY message for id.
func (f *Fake) Hotkey(id int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Messages = append(f.Messages, winapi.Msg{Message: winapi.WMHotkey, WParam: uintptr(id)})
}

// Count returns how many times op was called.
func (f *Fake) Count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

// Calls returns the call log in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// LiveDCs returns the number of device contexts not yet released.
func (f *Fake) LiveDCs() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.dcs)
}

// LiveBitmaps returns the number of bitmaps neither deleted nor published.
func (f *Fake) LiveBitmaps() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bitmaps)
}

// Created returns the size of every bitmap created so far.
func (f *Fake) Created() []winapi.Rect {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]winapi.Rect(nil), f.created...)
}

// Published returns every bitmap handed to the clipboard.
func (f *Fake) Published() []winapi.HBITMAP {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]winapi.HBITMAP(nil), f.published...)
}

// ClipboardOpen reports whether the clipboard is still held.
func (f *Fake) ClipboardOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clipOpen
}

// ClipboardOwner returns the window passed to the last OpenClipboard.
func (f *Fake) ClipboardOwner() winapi.HWND {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clipOwner
}

// Hotkeys returns the number of hotkeys still registered.
func (f *Fake) Hotkeys() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.hotkeys)
}

// MessageWindows returns the number of message windows not yet destroyed.
func (f *Fake) MessageWindows() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgWindows)
}

// QuitPosted returns how many times PostQuit succeeded.
func (f *Fake) QuitPosted() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.quitPosted
}

// Violations lists misuse detected so far: double releases, deleting a
// selected bitmap, touching the clipboard while closed, and so on.
func (f *Fake) Violations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.violations...)
}

var _ winapi.API = (*Fake)(nil)
