package server

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rajeshpachaikani/honeybee-kiosk-app/internal/config"
	"github.com/rajeshpachaikani/honeybee-kiosk-app/internal/recorder"
)

// stubBackend is a capture device that records nothing; enough to drive
// the recorder state machine through the HTTP surface.
type stubBackend struct {
	mu     sync.Mutex
	opened bool
}

func (b *stubBackend) Open(onSamples func([]float32)) (recorder.CaptureSession, error) {
	b.mu.Lock()
	b.opened = true
	b.mu.Unlock()
	return stubSession{}, nil
}

type stubSession struct{}

func (stubSession) Format() recorder.Format {
	return recorder.Format{SampleRate: 44100, Channels: 1}
}
func (stubSession) Start() error { return nil }
func (stubSession) Close() error { return nil }

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	cfg := config.Default()
	cfg.Recorder.Directory = t.TempDir()
	cfg.Recorder.ProgressIntervalMs = 1
	cfg.Recorder.StopPollIntervalMs = 1
	cfg.Recorder.StopPollAttempts = 500

	srv := newServer(cfg, "0", &stubBackend{})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestStatusEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/recorder/status")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var status StatusResponse
	decodeBody(t, resp, &status)
	if status.IsRecording {
		t.Error("expected is_recording=false on a fresh server")
	}
}

func TestStopWhenIdleReturnsConflict(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/recorder/stop", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}

	var generic GenericResponse
	decodeBody(t, resp, &generic)
	if generic.Success || generic.Error == "" {
		t.Errorf("expected failure body, got %+v", generic)
	}
}

func TestStartStatusStopCycle(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/recorder/start", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	var start StartResponse
	decodeBody(t, resp, &start)
	if start.Status != "Recording started" {
		t.Errorf("unexpected start status %q", start.Status)
	}

	resp, err = http.Get(ts.URL + "/api/recorder/status")
	if err != nil {
		t.Fatal(err)
	}
	var status StatusResponse
	decodeBody(t, resp, &status)
	if !status.IsRecording {
		t.Error("expected is_recording=true after start")
	}

	resp, err = http.Post(ts.URL+"/api/recorder/stop", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from stop, got %d", resp.StatusCode)
	}

	// The stub backend feeds no samples, so the recording itself fails
	// while the stop call succeeds.
	var result recorder.Result
	decodeBody(t, resp, &result)
	if result.Success {
		t.Error("expected success=false with no captured samples")
	}
	if result.Error != "no audio data recorded" {
		t.Errorf("unexpected result error %q", result.Error)
	}
}

func TestStartRequiresPost(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/recorder/start")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

func TestRecordingsEndpointEmpty(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/recordings")
	if err != nil {
		t.Fatal(err)
	}

	var listing RecordingsResponse
	decodeBody(t, resp, &listing)
	if listing.TotalCount != 0 || len(listing.Recordings) != 0 {
		t.Errorf("expected empty listing, got %+v", listing)
	}
}

func TestDeleteRequiresPathParameter(t *testing.T) {
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/recordings", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDeleteRefusesOutsidePath(t *testing.T) {
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/recordings?path=/etc/passwd", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestBrokerDeliversEventsOverSSE(t *testing.T) {
	srv, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/events")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected text/event-stream, got %q", ct)
	}

	// Wait for the subscription to register before publishing.
	deadline := time.Now().Add(2 * time.Second)
	for {
		srv.broker.mu.Lock()
		subscribed := len(srv.broker.subscribers) > 0
		srv.broker.mu.Unlock()
		if subscribed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("SSE client never subscribed")
		}
		time.Sleep(time.Millisecond)
	}

	srv.broker.Publish("recording-status", recorder.Progress{Recording: true, DurationMs: 400})

	scanner := bufio.NewScanner(resp.Body)
	var eventLine, dataLine string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event: ") {
			eventLine = line
		}
		if strings.HasPrefix(line, "data: ") {
			dataLine = line
			break
		}
	}

	if eventLine != "event: recording-status" {
		t.Errorf("unexpected event line %q", eventLine)
	}

	var progress recorder.Progress
	if err := json.Unmarshal([]byte(strings.TrimPrefix(dataLine, "data: ")), &progress); err != nil {
		t.Fatalf("event payload is not valid JSON: %v", err)
	}
	if !progress.Recording || progress.DurationMs != 400 {
		t.Errorf("unexpected payload %+v", progress)
	}
}

func TestBrokerDropsSlowSubscribers(t *testing.T) {
	b := NewBroker()
	ch := b.subscribe()
	defer b.unsubscribe(ch)

	// Overfill the subscriber channel; Publish must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Publish("recording-status", recorder.Progress{Recording: true})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}

	if len(ch) != cap(ch) {
		t.Errorf("expected channel full at %d, got %d", cap(ch), len(ch))
	}
}
