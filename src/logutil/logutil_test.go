package logutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestArchiveName(t *testing.T) {
	got := archiveName(filepath.Join("logs", "app.log"), 2)
	if want := filepath.Join("logs", "app.log.2"); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRotateShiftsArchives(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	for name, content := range map[string]string{
		path:                           "current",
		archiveName(path, 1):           "one",
		archiveName(path, 2):           "two",
		archiveName(path, maxArchives): "oldest",
	} {
		if err := os.WriteFile(name, []byte(content), 0o600); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	rotate(path)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected %s to be moved away, stat err=%v", path, err)
	}
	want := map[int]string{1: "current", 2: "one", 3: "two"}
	for n, content := range want {
		data, err := os.ReadFile(archiveName(path, n))
		if err != nil {
			t.Fatalf("Failed to read archive %d: %v", n, err)
		}
		if string(data) != content {
			t.Errorf("Archive %d: expected %q, got %q", n, content, data)
		}
	}
}

func TestRotatingWriterAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	w, err := openRotating(path)
	if err != nil {
		t.Fatalf("openRotating failed: %v", err)
	}
	defer w.f.Close()

	if _, err := w.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello\n" {
		t.Errorf("Expected 'hello\\n', got %q", data)
	}
}
