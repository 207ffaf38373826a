package recorder

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWriteRecordingCreatesDirectoryAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "recordings")
	ts := time.Date(2026, 8, 23, 14, 32, 5, 0, time.Local)
	payload := []byte("RIFF-payload")

	path, filename, err := writeRecording(dir, "REC_", ts, payload)
	if err != nil {
		t.Fatalf("writeRecording failed: %v", err)
	}

	if filename != "REC_20260823_143205.wav" {
		t.Errorf("unexpected filename %q", filename)
	}
	if path != filepath.Join(dir, filename) {
		t.Errorf("unexpected path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Error("written payload differs from input")
	}
}

func TestWriteRecordingHonorsPrefix(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)

	_, filename, err := writeRecording(dir, "kiosk-", ts, []byte{0})
	if err != nil {
		t.Fatalf("writeRecording failed: %v", err)
	}
	if filename != "kiosk-20260102_030405.wav" {
		t.Errorf("unexpected filename %q", filename)
	}
}

func TestWriteRecordingDirectoryFailure(t *testing.T) {
	// A file where the directory should be makes MkdirAll fail.
	base := t.TempDir()
	blocker := filepath.Join(base, "blocked")
	if err := os.WriteFile(blocker, []byte{0}, 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := writeRecording(filepath.Join(blocker, "recordings"), "REC_", time.Now(), []byte{0})
	if err == nil {
		t.Fatal("expected directory creation to fail")
	}
}
