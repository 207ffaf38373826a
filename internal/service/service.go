// Package service wires the recorder and the recording library behind one
// interface consumed by both the CLI commands and the web server.
package service

import (
	"time"

	"github.com/rajeshpachaikani/honeybee-kiosk-app/internal/config"
	"github.com/rajeshpachaikani/honeybee-kiosk-app/internal/events"
	"github.com/rajeshpachaikani/honeybee-kiosk-app/internal/recorder"
)

// Service is the command surface of the kiosk backend.
type Service interface {
	// Recording operations
	StartRecording() (string, error)
	StopRecording() (recorder.Result, error)
	IsRecording() bool

	// Recording library operations
	ListRecordings() ([]recorder.RecordingInfo, error)
	ReadRecording(path string) (string, error)
	DeleteRecording(path string) error
}

type service struct {
	rec *recorder.Recorder
	lib *recorder.Library
}

// New creates the service. The backend is injected so tests can substitute
// a fake capture device; production callers pass recorder.MalgoBackend{}.
func New(cfg *config.Config, backend recorder.CaptureBackend, publisher events.Publisher) Service {
	dir := cfg.RecordingsDirectory()

	rec := recorder.New(recorder.Options{
		Directory:        dir,
		FilePrefix:       cfg.Recorder.FilePrefix,
		ProgressInterval: time.Duration(cfg.Recorder.ProgressIntervalMs) * time.Millisecond,
		StopPollInterval: time.Duration(cfg.Recorder.StopPollIntervalMs) * time.Millisecond,
		StopPollAttempts: cfg.Recorder.StopPollAttempts,
	}, backend, publisher)

	return &service{
		rec: rec,
		lib: recorder.NewLibrary(dir),
	}
}

func (s *service) StartRecording() (string, error) {
	return s.rec.Start()
}

func (s *service) StopRecording() (recorder.Result, error) {
	return s.rec.Stop()
}

func (s *service) IsRecording() bool {
	return s.rec.IsRecording()
}

func (s *service) ListRecordings() ([]recorder.RecordingInfo, error) {
	return s.lib.List()
}

func (s *service) ReadRecording(path string) (string, error) {
	return s.lib.ReadDataURL(path)
}

func (s *service) DeleteRecording(path string) error {
	return s.lib.Delete(path)
}
