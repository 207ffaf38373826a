package recorder

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Recording filenames carry the local wall-clock time at second
// granularity, e.g. REC_20260823_143205.wav. Two completions inside the
// same second would collide, but the single-session invariant makes that
// unreachable through the public API.
const (
	timestampLayout = "20060102_150405"
	wavExtension    = ".wav"
)

// writeRecording resolves the output path for a capture completed at ts,
// creates the recordings directory if absent, and writes the encoded
// payload. Returns the full path and bare filename.
func writeRecording(dir, prefix string, ts time.Time, data []byte) (string, string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create recordings directory: %w", err)
	}

	filename := prefix + ts.Format(timestampLayout) + wavExtension
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", "", fmt.Errorf("failed to write WAV file: %w", err)
	}

	return path, filename, nil
}
