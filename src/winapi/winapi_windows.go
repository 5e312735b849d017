//go:build windows

package winapi

import (
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procFindWindow         = user32.NewProc("FindWindowW")
	procGetWindowRect      = user32.NewProc("GetWindowRect")
	procGetDC              = user32.NewProc("GetDC")
	procReleaseDC          = user32.NewProc("ReleaseDC")
	procOpenClipboard      = user32.NewProc("OpenClipboard")
	procEmptyClipboard     = user32.NewProc("EmptyClipboard")
	procSetClipboardData   = user32.NewProc("SetClipboardData")
	procCloseClipboard     = user32.NewProc("CloseClipboard")
	procCreateWindowEx     = user32.NewProc("CreateWindowExW")
	procDestroyWindow      = user32.NewProc("DestroyWindow")
	procRegisterHotKey     = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey   = user32.NewProc("UnregisterHotKey")
	procGetMessage         = user32.NewProc("GetMessageW")
	procPostThreadMessage  = user32.NewProc("PostThreadMessageW")
	procCreateCompatibleDC = gdi32.NewProc("CreateCompatibleDC")
	procDeleteDC           = gdi32.NewProc("DeleteDC")
	procCreateCompatibleBm = gdi32.NewProc("CreateCompatibleBitmap")
	procSelectObject       = gdi32.NewProc("SelectObject")
	procDeleteObject       = gdi32.NewProc("DeleteObject")
	procBitBlt             = gdi32.NewProc("BitBlt")
)

// hwndMessage is HWND_MESSAGE, the parent of message-only windows.
const hwndMessage = ^uintptr(2)

type system struct{}

// New returns the Win32 implementation.
func New() API { return system{} }

func (system) FindWindow(title string) (HWND, error) {
	name, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}
	r, _, e := procFindWindow.Call(0, uintptr(unsafe.Pointer(name)))
	if r == 0 {
		return 0, e
	}
	return HWND(r), nil
}

func (system) GetWindowRect(hwnd HWND) (Rect, error) {
	var rc win.RECT
	r, _, e := procGetWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&rc)))
	if r == 0 {
		return Rect{}, e
	}
	return Rect{Left: rc.Left, Top: rc.Top, Right: rc.Right, Bottom: rc.Bottom}, nil
}

func (system) GetDC(hwnd HWND) HDC {
	r, _, _ := procGetDC.Call(uintptr(hwnd))
	return HDC(r)
}

func (system) ReleaseDC(hwnd HWND, dc HDC) bool {
	r, _, _ := procReleaseDC.Call(uintptr(hwnd), uintptr(dc))
	return r != 0
}

func (system) CreateCompatibleDC(dc HDC) HDC {
	r, _, _ := procCreateCompatibleDC.Call(uintptr(dc))
	return HDC(r)
}

func (system) DeleteDC(dc HDC) bool {
	r, _, _ := procDeleteDC.Call(uintptr(dc))
	return r != 0
}

func (system) CreateCompatibleBitmap(dc HDC, width, height int32) HBITMAP {
	r, _, _ := procCreateCompatibleBm.Call(uintptr(dc), uintptr(width), uintptr(height))
	return HBITMAP(r)
}

func (system) SelectObject(dc HDC, obj HGDIOBJ) HGDIOBJ {
	r, _, _ := procSelectObject.Call(uintptr(dc), uintptr(obj))
	return HGDIOBJ(r)
}

func (system) DeleteObject(obj HGDIOBJ) bool {
	r, _, _ := procDeleteObject.Call(uintptr(obj))
	return r != 0
}

func (system) BitBlt(dst HDC, x, y, width, height int32, src HDC, srcX, srcY int32, rop uint32) error {
	r, _, e := procBitBlt.Call(
		uintptr(dst),
		uintptr(x),
		uintptr(y),
		uintptr(width),
		uintptr(height),
		uintptr(src),
		uintptr(srcX),
		uintptr(srcY),
		uintptr(rop),
	)
	if r == 0 {
		return e
	}
	return nil
}

func (system) OpenClipboard(owner HWND) error {
	r, _, e := procOpenClipboard.Call(uintptr(owner))
	if r == 0 {
		return e
	}
	return nil
}

func (system) EmptyClipboard() error {
	r, _, e := procEmptyClipboard.Call()
	if r == 0 {
		return e
	}
	return nil
}

func (system) SetClipboardData(format uint32, data HBITMAP) error {
	r, _, e := procSetClipboardData.Call(uintptr(format), uintptr(data))
	if r == 0 {
		return e
	}
	return nil
}

func (system) CloseClipboard() bool {
	r, _, _ := procCloseClipboard.Call()
	return r != 0
}

func (system) CreateMessageWindow() (HWND, error) {
	class, err := windows.UTF16PtrFromString("STATIC")
	if err != nil {
		return 0, err
	}
	r, _, e := procCreateWindowEx.Call(
		0,
		uintptr(unsafe.Pointer(class)),
		0,
		0,
		0, 0, 0, 0,
		hwndMessage,
		0,
		0,
		0,
	)
	if r == 0 {
		return 0, e
	}
	return HWND(r), nil
}

func (system) DestroyWindow(hwnd HWND) bool {
	r, _, _ := procDestroyWindow.Call(uintptr(hwnd))
	return r != 0
}

func (system) RegisterHotKey(hwnd HWND, id int32, modifiers, key uint32) error {
	r, _, e := procRegisterHotKey.Call(uintptr(hwnd), uintptr(id), uintptr(modifiers), uintptr(key))
	if r == 0 {
		return e
	}
	return nil
}

func (system) UnregisterHotKey(hwnd HWND, id int32) bool {
	r, _, _ := procUnregisterHotKey.Call(uintptr(hwnd), uintptr(id))
	return r != 0
}

func (system) GetMessage(msg *Msg) (int32, error) {
	var m win.MSG
	r, _, e := procGetMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
	ret := int32(r)
	if ret == -1 {
		return ret, e
	}
	*msg = Msg{
		HWnd:    HWND(m.HWnd),
		Message: m.Message,
		WParam:  m.WParam,
		LParam:  m.LParam,
		Time:    m.Time,
		PtX:     m.Pt.X,
		PtY:     m.Pt.Y,
	}
	return ret, nil
}

func (system) TranslateMessage(msg *Msg) {
	m := toMSG(msg)
	win.TranslateMessage(&m)
}

func (system) DispatchMessage(msg *Msg) {
	m := toMSG(msg)
	win.DispatchMessage(&m)
}

func (system) CurrentThreadID() uint32 {
	return windows.GetCurrentThreadId()
}

func (system) PostQuit(threadID uint32) error {
	r, _, e := procPostThreadMessage.Call(uintptr(threadID), WMQuit, 0, 0)
	if r == 0 {
		return e
	}
	return nil
}

func toMSG(msg *Msg) win.MSG {
	return win.MSG{
		HWnd:    win.HWND(msg.HWnd),
		Message: msg.Message,
		WParam:  msg.WParam,
		LParam:  msg.LParam,
		Time:    msg.Time,
		Pt:      win.POINT{X: msg.PtX, Y: msg.PtY},
	}
}
