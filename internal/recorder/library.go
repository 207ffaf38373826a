package recorder

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RecordingInfo describes one stored recording, as shown in the
// front-end's recording list.
type RecordingInfo struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	Modified int64  `json:"modified"`
}

// Library lists, serves and deletes stored recordings. Deletion is
// confined to the recordings directory.
type Library struct {
	dir string
}

// NewLibrary creates a Library over the given recordings directory.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// List returns all WAV recordings, newest first. A missing directory is
// an empty library, not an error.
func (l *Library) List() ([]RecordingInfo, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RecordingInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read recordings directory: %w", err)
	}

	recordings := make([]RecordingInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), wavExtension) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		recordings = append(recordings, RecordingInfo{
			Filename: entry.Name(),
			Path:     filepath.Join(l.dir, entry.Name()),
			Size:     info.Size(),
			Modified: info.ModTime().Unix(),
		})
	}

	sort.Slice(recordings, func(i, j int) bool {
		return recordings[i].Modified > recordings[j].Modified
	})

	return recordings, nil
}

// ReadDataURL reads a recording and returns it as a base64 data URL the
// webview can hand straight to an <audio> element.
func (l *Library) ReadDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read audio: %w", err)
	}
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Delete removes a recording. Paths resolving outside the recordings
// directory are refused.
func (l *Library) Delete(path string) error {
	if !l.contains(path) {
		return fmt.Errorf("cannot delete files outside recordings directory")
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete recording: %w", err)
	}
	return nil
}

// contains reports whether path lies inside the recordings directory.
func (l *Library) contains(path string) bool {
	rel, err := filepath.Rel(l.dir, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
