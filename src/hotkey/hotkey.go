package hotkey

import (
	"fmt"
	"strings"

	"kagerou-screenshot/src/winapi"
)

// Combo is a RegisterHotKey modifier set plus one virtual key.
type Combo struct {
	Modifiers uint32
	Key       uint32
}

// Parse converts a combination like "Shift+Pause" into a Combo. Exactly one
// non-modifier key is required; modifiers are optional.
func Parse(hotkeyConfig string) (Combo, error) {
	var combo Combo
	keys := parseHotkey(hotkeyConfig)
	for i, name := range keys {
		if mod, ok := modifierFlag(name); ok {
			combo.Modifiers |= mod
			continue
		}
		if i != len(keys)-1 {
			return Combo{}, fmt.Errorf("hotkey %q: key %q must come last", hotkeyConfig, name)
		}
		vk := keyNameToVK(name)
		if vk == 0 {
			return Combo{}, fmt.Errorf("hotkey %q: unknown key %q", hotkeyConfig, name)
		}
		combo.Key = vk
	}
	if combo.Key == 0 {
		return Combo{}, fmt.Errorf("hotkey %q: no key", hotkeyConfig)
	}
	return combo, nil
}

// parseHotkey converts a hotkey string like "Ctrl+Alt+q" to normalized key names
func parseHotkey(hotkeyConfig string) []string {
	parts := strings.Split(strings.ToLower(hotkeyConfig), "+")
	var keys []string

	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			continue
		case "ctrl", "control":
			keys = append(keys, "ctrl")
		case "win", "cmd", "super":
			keys = append(keys, "win")
		default:
			keys = append(keys, part)
		}
	}

	return keys
}

func modifierFlag(name string) (uint32, bool) {
	switch name {
	case "shift":
		return winapi.ModShift, true
	case "ctrl":
		return winapi.ModControl, true
	case "alt":
		return winapi.ModAlt, true
	case "win":
		return winapi.ModWin, true
	}
	return 0, false
}

// keyNameToVK maps a key name to its Windows virtual key code, or 0.
func keyNameToVK(keyName string) uint32 {
	keyName = strings.ToLower(strings.TrimSpace(keyName))

	// Letter keys (A-Z) and number keys (0-9) share their ASCII codes.
	if len(keyName) == 1 {
		c := keyName[0]
		switch {
		case c >= 'a' && c <= 'z':
			return uint32(c - 'a' + 'A')
		case c >= '0' && c <= '9':
			return uint32(c)
		}
	}

	// Function keys (F1-F24) - VK_F1 is 0x70
	var n int
	if _, err := fmt.Sscanf(keyName, "f%d", &n); err == nil && fmt.Sprintf("f%d", n) == keyName && n >= 1 && n <= 24 {
		return uint32(0x70 + n - 1)
	}

	switch keyName {
	case "pause", "break":
		return 0x13 // VK_PAUSE
	case "printscreen", "prtsc", "snapshot":
		return 0x2C // VK_SNAPSHOT
	case "scrolllock":
		return 0x91 // VK_SCROLL
	case "space":
		return 0x20 // VK_SPACE
	case "enter", "return":
		return 0x0D // VK_RETURN
	case "esc", "escape":
		return 0x1B // VK_ESCAPE
	case "tab":
		return 0x09 // VK_TAB
	case "backspace":
		return 0x08 // VK_BACK
	case "delete", "del":
		return 0x2E // VK_DELETE
	case "insert", "ins":
		return 0x2D // VK_INSERT
	case "home":
		return 0x24 // VK_HOME
	case "end":
		return 0x23 // VK_END
	case "pageup", "pgup":
		return 0x21 // VK_PRIOR
	case "pagedown", "pgdn":
		return 0x22 // VK_NEXT

	// Arrow keys
	case "left":
		return 0x25 // VK_LEFT
	case "up":
		return 0x26 // VK_UP
	case "right":
		return 0x27 // VK_RIGHT
	case "down":
		return 0x28 // VK_DOWN
	}
	return 0
}
