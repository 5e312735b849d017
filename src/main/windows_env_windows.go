//go:build windows

package main

import (
	"fmt"

	"golang.org/x/sys/windows"
)

const processPerMonitorDPIAware = 2

// enableDPIAwareness makes window rects and the screen DC agree on physical
// pixels. It runs before any window exists, which is before logging is
// configured, so it returns a line for the startup log instead of logging.
func enableDPIAwareness() string {
	perMonitor := windows.NewLazySystemDLL("Shcore.dll").NewProc("SetProcessDpiAwareness")
	if perMonitor.Find() == nil {
		if hr, _, _ := perMonitor.Call(processPerMonitorDPIAware); hr != 0 {
			return fmt.Sprintf("per-monitor awareness refused (HRESULT 0x%08X)", uint32(hr))
		}
		return "per-monitor"
	}

	system := windows.NewLazySystemDLL("user32.dll").NewProc("SetProcessDPIAware")
	if system.Find() != nil {
		return "unaware, no DPI API available"
	}
	if ok, _, _ := system.Call(); ok == 0 {
		return "system awareness refused"
	}
	return "system"
}
