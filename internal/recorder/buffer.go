package recorder

import "sync"

// Format describes the capture format of one recording session, read from
// the input device when the session opens.
type Format struct {
	SampleRate int `json:"sample_rate"`
	Channels   int `json:"channels"`
}

// SampleBuffer accumulates interleaved float32 samples in [-1.0, 1.0] for
// the duration of one capture session. The device callback is the only
// writer and the stop path is the only reader; both go through the mutex,
// and the lock is held just long enough to append or copy.
type SampleBuffer struct {
	mu      sync.Mutex
	format  Format
	samples []float32
}

// Reset clears the buffer for a new session, keeping allocated capacity.
func (b *SampleBuffer) Reset() {
	b.mu.Lock()
	b.samples = b.samples[:0]
	b.format = Format{}
	b.mu.Unlock()
}

// SetFormat records the device's native format. Called once per session,
// after the device is opened and before any samples arrive.
func (b *SampleBuffer) SetFormat(format Format) {
	b.mu.Lock()
	b.format = format
	b.mu.Unlock()
}

// Append adds a chunk of captured samples. Safe to call from the device
// callback thread.
func (b *SampleBuffer) Append(samples []float32) {
	b.mu.Lock()
	b.samples = append(b.samples, samples...)
	b.mu.Unlock()
}

// Snapshot returns the format and a copy of everything appended so far.
// The copy hands the data across the thread boundary; the buffer itself is
// never shared outside the lock.
func (b *SampleBuffer) Snapshot() (Format, []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	samples := make([]float32, len(b.samples))
	copy(samples, b.samples)
	return b.format, samples
}

// Len returns the number of samples appended so far.
func (b *SampleBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples)
}
