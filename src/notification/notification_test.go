//go:build !windows

package notification

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"kagerou-screenshot/src/failure"
)

func TestReporterLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	Reporter("kagerou-screenshot").Report(failure.Check(false, "GetDC"))

	if !strings.Contains(buf.String(), "kagerou-screenshot: GetDC failed") {
		t.Errorf("Expected dialog text in log, got %q", buf.String())
	}
}
