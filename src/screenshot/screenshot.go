// Package screenshot describes the active display layout. It never captures
// pixels; the capture package copies window contents itself.
package screenshot

import (
	"image"
	"log"

	"github.com/kbinani/screenshot"
)

// Displays returns the bounds of every active display.
func Displays() []image.Rectangle {
	n := screenshot.NumActiveDisplays()
	bounds := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		bounds = append(bounds, screenshot.GetDisplayBounds(i))
	}
	return bounds
}

// LogDisplays writes the display layout to the log.
func LogDisplays() {
	displays := Displays()
	log.Printf("MONITOR: Detected %d displays", len(displays))
	for i, b := range displays {
		log.Printf("MONITOR: display %d - x:%d y:%d w:%d h:%d", i, b.Min.X, b.Min.Y, b.Dx(), b.Dy())
	}
}

// Locate returns the display holding most of r.
func Locate(r image.Rectangle) (int, bool) {
	return displayIndex(Displays(), r)
}

// displayIndex returns the index of the display sharing the largest area
// with r, or false when r touches none of them.
func displayIndex(displays []image.Rectangle, r image.Rectangle) (int, bool) {
	best, bestArea := -1, 0
	for i, d := range displays {
		in := d.Intersect(r)
		if area := in.Dx() * in.Dy(); area > bestArea {
			best, bestArea = i, area
		}
	}
	return best, best >= 0
}
