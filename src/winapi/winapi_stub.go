//go:build !windows

package winapi

type system struct{}

// New returns an implementation whose every call fails with ErrUnsupported.
func New() API { return system{} }

func (system) FindWindow(string) (HWND, error) { return 0, ErrUnsupported }

func (system) GetWindowRect(HWND) (Rect, error) { return Rect{}, ErrUnsupported }

func (system) GetDC(HWND) HDC { return 0 }

func (system) ReleaseDC(HWND, HDC) bool { return false }

func (system) CreateCompatibleDC(HDC) HDC { return 0 }

func (system) DeleteDC(HDC) bool { return false }

func (system) CreateCompatibleBitmap(HDC, int32, int32) HBITMAP { return 0 }

func (system) SelectObject(HDC, HGDIOBJ) HGDIOBJ { return 0 }

func (system) DeleteObject(HGDIOBJ) bool { return false }

func (system) BitBlt(HDC, int32, int32, int32, int32, HDC, int32, int32, uint32) error {
	return ErrUnsupported
}

func (system) OpenClipboard(HWND) error { return ErrUnsupported }

func (system) EmptyClipboard() error { return ErrUnsupported }

func (system) SetClipboardData(uint32, HBITMAP) error { return ErrUnsupported }

func (system) CloseClipboard() bool { return false }

func (system) CreateMessageWindow() (HWND, error) { return 0, ErrUnsupported }

func (system) DestroyWindow(HWND) bool { return false }

func (system) RegisterHotKey(HWND, int32, uint32, uint32) error { return ErrUnsupported }

func (system) UnregisterHotKey(HWND, int32) bool { return false }

func (system) GetMessage(*Msg) (int32, error) { return -1, ErrUnsupported }

func (system) TranslateMessage(*Msg) {}

func (system) DispatchMessage(*Msg) {}

func (system) CurrentThreadID() uint32 { return 0 }

func (system) PostQuit(uint32) error { return ErrUnsupported }
