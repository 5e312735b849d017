// Package capture copies the visible pixels of one window into a bitmap and
// publishes that bitmap on the system clipboard.
//
// Every handle acquired along the way is released in reverse order on every
// exit path; the bitmap itself is released unless the clipboard took it.
package capture

import (
	"image"
	"log"

	"kagerou-screenshot/src/failure"
	"kagerou-screenshot/src/scope"
	"kagerou-screenshot/src/winapi"
)

// API is the part of the platform the flow needs.
type API interface {
	winapi.Graphics
	winapi.Clipboard
}

// Reporter shows a failed cycle to the user. Report blocks until the user
// has seen the message.
type Reporter interface {
	Report(err error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(err error)

func (f ReporterFunc) Report(err error) { f(err) }

// DisplayLocator reports which display holds a screen rectangle. It is only
// used for logging.
type DisplayLocator func(r image.Rectangle) (int, bool)

// Capturer runs capture-and-publish cycles against one window title.
type Capturer struct {
	api      API
	title    string
	reporter Reporter
	displays DisplayLocator
}

// New returns a Capturer for the window titled exactly title.
func New(api API, title string, reporter Reporter) *Capturer {
	return &Capturer{api: api, title: title, reporter: reporter}
}

// SetDisplayLocator optionally enables display logging for captured rects.
func (c *Capturer) SetDisplayLocator(d DisplayLocator) { c.displays = d }

// Run performs one cycle: capture the target window, then publish the
// bitmap to the clipboard owned by owner. A failure is reported once and
// returned; nothing is retried.
func (c *Capturer) Run(owner winapi.HWND) error {
	bitmap, err := c.CreateBitmap()
	if err == nil {
		err = c.Publish(owner, bitmap)
	}
	if err != nil {
		log.Printf("capture: cycle failed: %+v", err)
		if c.reporter != nil {
			c.reporter.Report(err)
		}
		return err
	}
	log.Printf("capture: %q copied to clipboard", c.title)
	return nil
}

// CreateBitmap copies the on-screen area of the target window into a new
// bitmap. The caller owns the returned bitmap.
func (c *Capturer) CreateBitmap() (winapi.HBITMAP, error) {
	window, err := c.api.FindWindow(c.title)
	if err := failure.CheckErr(err, "FindWindow"); err != nil {
		return 0, err
	}

	screenDC := c.api.GetDC(0)
	if err := failure.Check(screenDC != 0, "GetDC"); err != nil {
		return 0, err
	}
	defer scope.New(func() { c.api.ReleaseDC(0, screenDC) }).Release()

	memDC := c.api.CreateCompatibleDC(screenDC)
	if err := failure.Check(memDC != 0, "CreateCompatibleDC"); err != nil {
		return 0, err
	}
	defer scope.New(func() { c.api.DeleteDC(memDC) }).Release()

	rect, err := c.api.GetWindowRect(window)
	if err := failure.CheckErr(err, "GetWindowRect"); err != nil {
		return 0, err
	}
	width, height := rect.Width(), rect.Height()
	c.logDisplay(rect)

	bitmap := c.api.CreateCompatibleBitmap(screenDC, width, height)
	if err := failure.Check(bitmap != 0, "CreateCompatibleBitmap"); err != nil {
		return 0, err
	}
	owned := true
	defer scope.New(func() {
		if owned {
			c.api.DeleteObject(winapi.HGDIOBJ(bitmap))
		}
	}).Release()

	previous := c.api.SelectObject(memDC, winapi.HGDIOBJ(bitmap))
	if err := failure.CheckGDI(previous, "SelectObject"); err != nil {
		return 0, err
	}
	defer scope.New(func() { c.api.SelectObject(memDC, previous) }).Release()

	err = c.api.BitBlt(memDC, 0, 0, width, height, screenDC, rect.Left, rect.Top, winapi.SrcCopy)
	if err := failure.CheckErr(err, "BitBlt"); err != nil {
		return 0, err
	}

	log.Printf("capture: copied %dx%d at (%d,%d)", width, height, rect.Left, rect.Top)
	owned = false
	return bitmap, nil
}

// Publish replaces the clipboard contents with bitmap. On success the
// clipboard owns bitmap; on failure it is deleted.
func (c *Capturer) Publish(owner winapi.HWND, bitmap winapi.HBITMAP) error {
	transferred := false
	defer scope.New(func() {
		if !transferred {
			c.api.DeleteObject(winapi.HGDIOBJ(bitmap))
		}
	}).Release()

	if err := failure.CheckErr(c.api.OpenClipboard(owner), "OpenClipboard"); err != nil {
		return err
	}
	defer scope.New(func() { c.api.CloseClipboard() }).Release()

	if err := failure.CheckErr(c.api.EmptyClipboard(), "EmptyClipboard"); err != nil {
		return err
	}
	if err := failure.CheckErr(c.api.SetClipboardData(winapi.CFBitmap, bitmap), "SetClipboardData"); err != nil {
		return err
	}
	transferred = true
	return nil
}

func (c *Capturer) logDisplay(rect winapi.Rect) {
	if c.displays == nil {
		return
	}
	r := image.Rect(int(rect.Left), int(rect.Top), int(rect.Right), int(rect.Bottom))
	if i, ok := c.displays(r); ok {
		log.Printf("capture: target on display %d", i)
	} else {
		log.Printf("capture: target %v is outside every active display", r)
	}
}
