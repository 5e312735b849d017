package notification

import (
	"log"

	"kagerou-screenshot/src/capture"
)

// Reporter returns a capture.Reporter that shows each failure in a blocking
// error dialog titled title.
func Reporter(title string) capture.Reporter {
	return capture.ReporterFunc(func(err error) {
		log.Printf("notification: %s: %v", title, err)
		ShowBlockingError(title, err.Error())
	})
}
