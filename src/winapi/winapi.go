// Package winapi is the small slice of the Win32 window, GDI and clipboard
// API this tool calls. Operations that set the thread's last-error value
// return it as an error (a syscall.Errno); the rest report failure through a
// zero handle or a false result, as the platform does.
package winapi

import "errors"

type (
	HWND    uintptr
	HDC     uintptr
	HBITMAP uintptr
	HGDIOBJ uintptr
)

const (
	// HGDIError is HGDI_ERROR, the (HGDIOBJ)-1 sentinel returned by SelectObject.
	HGDIError HGDIOBJ = ^HGDIOBJ(0)

	CFBitmap = 2          // CF_BITMAP
	SrcCopy  = 0x00CC0020 // SRCCOPY

	ModShift   = 0x0004 // MOD_SHIFT
	ModAlt     = 0x0001 // MOD_ALT
	ModControl = 0x0002 // MOD_CONTROL
	ModWin     = 0x0008 // MOD_WIN

	WMHotkey = 0x0312 // WM_HOTKEY
	WMQuit   = 0x0012 // WM_QUIT
)

// ErrUnsupported is returned by every operation on platforms other than Windows.
var ErrUnsupported = errors.New("winapi: not supported on this platform")

// Rect is a window rectangle in screen coordinates.
type Rect struct {
	Left, Top, Right, Bottom int32
}

func (r Rect) Width() int32  { return r.Right - r.Left }
func (r Rect) Height() int32 { return r.Bottom - r.Top }

// Msg is a queued window message.
type Msg struct {
	HWnd     HWND
	Message  uint32
	WParam   uintptr
	LParam   uintptr
	Time     uint32
	PtX, PtY int32
}

// Graphics locates windows and copies their pixels through GDI.
type Graphics interface {
	FindWindow(title string) (HWND, error)
	GetWindowRect(hwnd HWND) (Rect, error)

	GetDC(hwnd HWND) HDC
	ReleaseDC(hwnd HWND, dc HDC) bool
	CreateCompatibleDC(dc HDC) HDC
	DeleteDC(dc HDC) bool

	CreateCompatibleBitmap(dc HDC, width, height int32) HBITMAP
	SelectObject(dc HDC, obj HGDIOBJ) HGDIOBJ
	DeleteObject(obj HGDIOBJ) bool
	BitBlt(dst HDC, x, y, width, height int32, src HDC, srcX, srcY int32, rop uint32) error
}

// Clipboard is the system clipboard. SetClipboardData hands ownership of
// data to the system when it succeeds.
type Clipboard interface {
	OpenClipboard(owner HWND) error
	EmptyClipboard() error
	SetClipboardData(format uint32, data HBITMAP) error
	CloseClipboard() bool
}

// Messaging owns the hotkey registration and the thread message queue.
// GetMessage, RegisterHotKey and CreateMessageWindow are bound to the
// calling OS thread.
type Messaging interface {
	CreateMessageWindow() (HWND, error)
	DestroyWindow(hwnd HWND) bool
	RegisterHotKey(hwnd HWND, id int32, modifiers, key uint32) error
	UnregisterHotKey(hwnd HWND, id int32) bool

	// GetMessage returns 1 for a message, 0 for WM_QUIT and -1 on error.
	GetMessage(msg *Msg) (int32, error)
	TranslateMessage(msg *Msg)
	DispatchMessage(msg *Msg)

	CurrentThreadID() uint32
	PostQuit(threadID uint32) error
}

// API is the full surface used by the capture flow and the event loop.
type API interface {
	Graphics
	Clipboard
	Messaging
}
