// Package recorder implements the kiosk's single-session audio recorder:
// capture from the default input device, accumulation into a sample
// buffer, and serialization to 16-bit PCM WAV on stop.
package recorder

import (
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/rajeshpachaikani/honeybee-kiosk-app/internal/events"
)

// ErrNotRecording is returned by Stop when no session is active.
var ErrNotRecording = errors.New("not recording")

// Progress is the payload of periodic recording-status events. The
// duration here is wall-clock elapsed time, a display heartbeat only; the
// persisted duration is derived from the sample count.
type Progress struct {
	Recording  bool  `json:"recording"`
	DurationMs int64 `json:"duration_ms"`
}

// Result is the outcome of one completed stop, returned by Stop and
// carried by the recording-saved event. Success refers to the recording:
// a Stop call can succeed while the recording itself failed.
type Result struct {
	Path       string `json:"path"`
	Filename   string `json:"filename"`
	DurationMs int64  `json:"duration_ms"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// Options configures a Recorder. Zero values fall back to the defaults
// the kiosk ships with.
type Options struct {
	// Directory recordings are written to.
	Directory string

	// FilePrefix is prepended to the timestamp in filenames.
	FilePrefix string

	// ProgressInterval is the cadence of recording-status events.
	ProgressInterval time.Duration

	// StopPollInterval and StopPollAttempts bound how long Stop waits for
	// the capture goroutine to acknowledge termination.
	StopPollInterval time.Duration
	StopPollAttempts int
}

func (o *Options) applyDefaults() {
	if o.FilePrefix == "" {
		o.FilePrefix = "REC_"
	}
	if o.ProgressInterval <= 0 {
		o.ProgressInterval = 200 * time.Millisecond
	}
	if o.StopPollInterval <= 0 {
		o.StopPollInterval = 50 * time.Millisecond
	}
	if o.StopPollAttempts <= 0 {
		o.StopPollAttempts = 100
	}
}

// Recorder owns the recording session lifecycle. At most one capture
// session exists at any time; Start and Stop may be called from any
// goroutine. Construct one instance at startup and share it by reference.
type Recorder struct {
	opts    Options
	backend CaptureBackend
	events  events.Publisher

	// recording and stopRequested are the handshake between the public
	// API and the capture goroutine. All transitions are atomic.
	recording     atomic.Bool
	stopRequested atomic.Bool

	buf SampleBuffer

	// now stamps output filenames. Overridden in tests.
	now func() time.Time
}

// New creates a Recorder. The publisher receives recording-status,
// recording-error and recording-saved events; pass events.Discard when no
// front-end is attached.
func New(opts Options, backend CaptureBackend, publisher events.Publisher) *Recorder {
	opts.applyDefaults()
	if publisher == nil {
		publisher = events.Discard
	}
	return &Recorder{
		opts:    opts,
		backend: backend,
		events:  publisher,
		now:     time.Now,
	}
}

// Start begins a new capture session and returns immediately. Calling
// Start while already recording is a no-op success: the in-progress
// buffer is untouched and no second session is spawned.
func (r *Recorder) Start() (string, error) {
	if !r.recording.CompareAndSwap(false, true) {
		return "Already recording", nil
	}

	r.stopRequested.Store(false)
	r.buf.Reset()

	go r.run()

	slog.Info("Recording started")
	return "Recording started", nil
}

// Stop signals the capture session to halt, waits a bounded time for it
// to acknowledge, then snapshots the buffer, encodes it and persists the
// WAV file. Persistence failures are reported inside the Result, not as a
// returned error; the only call-level failure is ErrNotRecording.
//
// If the capture goroutine has not finished when the wait expires, Stop
// proceeds with whatever was appended up to the snapshot. Frames delivered
// after that point are dropped.
func (r *Recorder) Stop() (Result, error) {
	if !r.recording.Load() {
		return Result{}, ErrNotRecording
	}

	r.stopRequested.Store(true)

	for attempts := 0; r.recording.Load() && attempts < r.opts.StopPollAttempts; attempts++ {
		time.Sleep(r.opts.StopPollInterval)
	}

	format, samples := r.buf.Snapshot()

	if len(samples) == 0 {
		result := Result{Success: false, Error: "no audio data recorded"}
		r.events.Publish(events.EventRecordingSaved, result)
		slog.Warn("Recording stopped with no audio data")
		return result, nil
	}

	durationMs := int64(len(samples)) * 1000 / int64(format.SampleRate*format.Channels)

	data := EncodeWAV(format, samples)
	path, filename, err := writeRecording(r.opts.Directory, r.opts.FilePrefix, r.now(), data)
	if err != nil {
		result := Result{DurationMs: durationMs, Success: false, Error: err.Error()}
		r.events.Publish(events.EventRecordingSaved, result)
		slog.Error("Failed to save recording", "error", err)
		return result, nil
	}

	result := Result{
		Path:       path,
		Filename:   filename,
		DurationMs: durationMs,
		Success:    true,
	}
	r.events.Publish(events.EventRecordingSaved, result)
	slog.Info("Recording saved", "file", filename, "duration_ms", durationMs)
	return result, nil
}

// IsRecording reports whether a session is active. Non-blocking.
func (r *Recorder) IsRecording() bool {
	return r.recording.Load()
}

// run is the capture goroutine: it owns the device session from open to
// release. Setup failures are converted into recording-error events and a
// state reset; they never surface through Start, which has already
// returned by the time they can occur.
func (r *Recorder) run() {
	session, err := r.backend.Open(r.buf.Append)
	if err != nil {
		slog.Error("Failed to open input device", "error", err)
		r.events.Publish(events.EventRecordingError, err.Error())
		r.recording.Store(false)
		return
	}

	r.buf.SetFormat(session.Format())

	if err := session.Start(); err != nil {
		slog.Error("Failed to start capture stream", "error", err)
		r.events.Publish(events.EventRecordingError, err.Error())
		if cerr := session.Close(); cerr != nil {
			slog.Warn("Failed to release input device", "error", cerr)
		}
		r.recording.Store(false)
		return
	}

	slog.Debug("Capture stream running", "format", session.Format())

	start := time.Now()
	ticker := time.NewTicker(r.opts.ProgressInterval)
	defer ticker.Stop()

	for !r.stopRequested.Load() {
		r.events.Publish(events.EventRecordingStatus, Progress{
			Recording:  true,
			DurationMs: time.Since(start).Milliseconds(),
		})
		<-ticker.C
	}

	if err := session.Close(); err != nil {
		slog.Warn("Failed to release input device", "error", err)
	}

	// Recording→Idle is the last transition; Stop's wait polls for it.
	r.recording.Store(false)
	r.stopRequested.Store(false)
}
