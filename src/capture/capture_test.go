package capture

import (
	"image"
	"reflect"
	"testing"

	"kagerou-screenshot/src/failure"
	"kagerou-screenshot/src/winapi"
	"kagerou-screenshot/src/winapi/winapitest"
)

const owner winapi.HWND = 0x42

type dialogs struct{ messages []string }

func (d *dialogs) Report(err error) { d.messages = append(d.messages, err.Error()) }

func kagerou() *winapitest.Fake {
	return winapitest.New(map[string]winapi.Rect{
		"kagerou": {Left: 100, Top: 100, Right: 500, Bottom: 400},
	})
}

func assertClean(t *testing.T, api *winapitest.Fake) {
	t.Helper()
	if v := api.Violations(); len(v) > 0 {
		t.Errorf("Unexpected API misuse: %v", v)
	}
	if n := api.LiveDCs(); n != 0 {
		t.Errorf("Expected no live DCs, got %d", n)
	}
	if n := api.LiveBitmaps(); n != 0 {
		t.Errorf("Expected no live bitmaps, got %d", n)
	}
	if api.ClipboardOpen() {
		t.Error("Expected clipboard to be closed")
	}
}

func TestRunCopiesWindowToClipboard(t *testing.T) {
	api := kagerou()
	d := &dialogs{}
	c := New(api, "kagerou", d)

	if err := c.Run(owner); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	assertClean(t, api)
	if len(d.messages) != 0 {
		t.Errorf("Expected no dialogs, got %v", d.messages)
	}
	created := api.Created()
	if len(created) != 1 || created[0].Width() != 400 || created[0].Height() != 300 {
		t.Fatalf("Expected one 400x300 bitmap, got %v", created)
	}
	if n := len(api.Published()); n != 1 {
		t.Fatalf("Expected one published bitmap, got %d", n)
	}
	if api.ClipboardOwner() != owner {
		t.Errorf("Expected clipboard owner %#x, got %#x", owner, api.ClipboardOwner())
	}
	for _, op := range []string{"OpenClipboard", "EmptyClipboard", "SetClipboardData", "CloseClipboard", "BitBlt", "GetDC", "ReleaseDC", "CreateCompatibleDC", "DeleteDC"} {
		if n := api.Count(op); n != 1 {
			t.Errorf("Expected %s once, got %d", op, n)
		}
	}
	if n := api.Count("DeleteObject"); n != 0 {
		t.Errorf("Expected published bitmap not to be deleted, got %d DeleteObject calls", n)
	}
}

func TestRunReleasesInReverseOrder(t *testing.T) {
	api := kagerou()
	c := New(api, "kagerou", nil)

	if err := c.Run(owner); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []string{
		"FindWindow",
		"GetDC",
		"CreateCompatibleDC",
		"GetWindowRect",
		"CreateCompatibleBitmap",
		"SelectObject",
		"BitBlt",
		"SelectObject",
		"DeleteDC",
		"ReleaseDC",
		"OpenClipboard",
		"EmptyClipboard",
		"SetClipboardData",
		"CloseClipboard",
	}
	if got := api.Calls(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Unexpected call order:\n got  %v\n want %v", got, want)
	}
}

func TestRepeatedHotkeysBalanceResources(t *testing.T) {
	api := kagerou()
	c := New(api, "kagerou", nil)

	const n = 5
	for i := 0; i < n; i++ {
		if err := c.Run(owner); err != nil {
			t.Fatalf("Run %d failed: %v", i, err)
		}
	}

	assertClean(t, api)
	if got := len(api.Created()); got != n {
		t.Errorf("Expected %d bitmaps created, got %d", n, got)
	}
	if got := len(api.Published()); got != n {
		t.Errorf("Expected %d bitmaps published, got %d", n, got)
	}
	if api.Count("GetDC") != api.Count("ReleaseDC") {
		t.Errorf("GetDC/ReleaseDC mismatch: %d/%d", api.Count("GetDC"), api.Count("ReleaseDC"))
	}
	if api.Count("CreateCompatibleDC") != api.Count("DeleteDC") {
		t.Errorf("CreateCompatibleDC/DeleteDC mismatch: %d/%d", api.Count("CreateCompatibleDC"), api.Count("DeleteDC"))
	}
}

func TestMissingWindowFailsFast(t *testing.T) {
	api := winapitest.New(nil)
	d := &dialogs{}
	c := New(api, "kagerou", d)

	err := c.Run(owner)
	if err == nil {
		t.Fatal("Expected error for missing window")
	}
	if failure.Op(err) != "FindWindow" {
		t.Errorf("Expected FindWindow failure, got %v", err)
	}
	if len(d.messages) != 1 {
		t.Fatalf("Expected exactly one dialog, got %v", d.messages)
	}
	if got := d.messages[0]; got != "FindWindow failed (0)" {
		t.Errorf("Unexpected dialog text %q", got)
	}
	if want := []string{"FindWindow"}; !reflect.DeepEqual(api.Calls(), want) {
		t.Errorf("Expected only FindWindow, got %v", api.Calls())
	}
	assertClean(t, api)
}

func TestFailuresReleaseEverythingAcquired(t *testing.T) {
	tests := []struct {
		op       string
		message  string
		released map[string]int
	}{
		{
			op:       "GetDC",
			message:  "GetDC failed",
			released: map[string]int{"ReleaseDC": 0, "DeleteDC": 0, "DeleteObject": 0},
		},
		{
			op:       "CreateCompatibleDC",
			message:  "CreateCompatibleDC failed",
			released: map[string]int{"ReleaseDC": 1, "DeleteDC": 0, "DeleteObject": 0},
		},
		{
			op:       "GetWindowRect",
			message:  "GetWindowRect failed (1400)",
			released: map[string]int{"ReleaseDC": 1, "DeleteDC": 1, "DeleteObject": 0},
		},
		{
			op:       "CreateCompatibleBitmap",
			message:  "CreateCompatibleBitmap failed",
			released: map[string]int{"ReleaseDC": 1, "DeleteDC": 1, "DeleteObject": 0},
		},
		{
			op:       "SelectObject",
			message:  "SelectObject failed",
			released: map[string]int{"ReleaseDC": 1, "DeleteDC": 1, "DeleteObject": 1, "SelectObject": 1},
		},
		{
			op:       "BitBlt",
			message:  "BitBlt failed (31)",
			released: map[string]int{"ReleaseDC": 1, "DeleteDC": 1, "DeleteObject": 1, "SelectObject": 2},
		},
		{
			op:       "OpenClipboard",
			message:  "OpenClipboard failed (5)",
			released: map[string]int{"ReleaseDC": 1, "DeleteDC": 1, "DeleteObject": 1, "CloseClipboard": 0},
		},
		{
			op:       "EmptyClipboard",
			message:  "EmptyClipboard failed (5)",
			released: map[string]int{"DeleteObject": 1, "CloseClipboard": 1, "SetClipboardData": 0},
		},
		{
			op:       "SetClipboardData",
			message:  "SetClipboardData failed (5)",
			released: map[string]int{"DeleteObject": 1, "CloseClipboard": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			api := kagerou()
			api.Fail[tt.op] = true
			d := &dialogs{}
			c := New(api, "kagerou", d)

			err := c.Run(owner)
			if err == nil {
				t.Fatal("Expected error")
			}
			if failure.Op(err) != tt.op {
				t.Errorf("Expected %s failure, got %v", tt.op, err)
			}
			if len(d.messages) != 1 || d.messages[0] != tt.message {
				t.Errorf("Expected dialog %q, got %v", tt.message, d.messages)
			}
			for op, n := range tt.released {
				if got := api.Count(op); got != n {
					t.Errorf("Expected %s %d times, got %d", op, n, got)
				}
			}
			if n := len(api.Published()); n != 0 {
				t.Errorf("Expected nothing published, got %d", n)
			}
			assertClean(t, api)
		})
	}
}

func TestSelectObjectGDIErrorIsFailure(t *testing.T) {
	api := kagerou()
	api.Fail["SelectObject"] = true
	api.SelectGDIError = true
	c := New(api, "kagerou", nil)

	err := c.Run(owner)
	if failure.Op(err) != "SelectObject" {
		t.Fatalf("Expected SelectObject failure, got %v", err)
	}
	if n := api.Count("SelectObject"); n != 1 {
		t.Errorf("Expected no restore after failed select, got %d SelectObject calls", n)
	}
	if n := api.Count("BitBlt"); n != 0 {
		t.Errorf("Expected no BitBlt, got %d", n)
	}
	assertClean(t, api)
}

func TestZeroSizedWindow(t *testing.T) {
	api := winapitest.New(map[string]winapi.Rect{
		"kagerou": {Left: -32000, Top: -32000, Right: -32000, Bottom: -32000},
	})
	c := New(api, "kagerou", nil)

	err := c.Run(owner)
	if failure.Op(err) != "CreateCompatibleBitmap" {
		t.Fatalf("Expected CreateCompatibleBitmap failure, got %v", err)
	}
	assertClean(t, api)
}

func TestCreateBitmapReturnsOwnedBitmap(t *testing.T) {
	api := kagerou()
	c := New(api, "kagerou", nil)

	bitmap, err := c.CreateBitmap()
	if err != nil {
		t.Fatalf("CreateBitmap failed: %v", err)
	}
	if bitmap == 0 {
		t.Fatal("Expected a bitmap handle")
	}
	if n := api.LiveBitmaps(); n != 1 {
		t.Fatalf("Expected the bitmap to survive, got %d live", n)
	}
	if n := api.LiveDCs(); n != 0 {
		t.Errorf("Expected DCs released, got %d live", n)
	}
}

func TestDisplayLocatorReceivesWindowRect(t *testing.T) {
	api := kagerou()
	c := New(api, "kagerou", nil)

	var seen []string
	c.SetDisplayLocator(func(r image.Rectangle) (int, bool) {
		seen = append(seen, r.String())
		return 0, true
	})

	if err := c.Run(owner); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if want := []string{"(100,100)-(500,400)"}; !reflect.DeepEqual(seen, want) {
		t.Errorf("Expected %v, got %v", want, seen)
	}
}

func TestReporterFunc(t *testing.T) {
	var got error
	r := ReporterFunc(func(err error) { got = err })

	want := failure.Check(false, "GetDC")
	r.Report(want)
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
