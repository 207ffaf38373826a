package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rajeshpachaikani/honeybee-kiosk-app/internal/events"
	"github.com/rajeshpachaikani/honeybee-kiosk-app/internal/recorder"
	"github.com/rajeshpachaikani/honeybee-kiosk-app/internal/service"

	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record from the default input device until interrupted",
	Long: `Record audio from the default input device and save it as a WAV file
in the recordings directory. Press Ctrl+C to stop and save.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.New(cfg, recorder.MalgoBackend{}, logPublisher())

		status, err := svc.StartRecording()
		if err != nil {
			return fmt.Errorf("failed to start recording: %w", err)
		}
		slog.Info(status)
		slog.Info("Recording... Press Ctrl+C to stop")

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		slog.Info("Stopping recording...")
		result, err := svc.StopRecording()
		if err != nil {
			return fmt.Errorf("failed to stop recording: %w", err)
		}

		if !result.Success {
			return fmt.Errorf("recording failed: %s", result.Error)
		}

		fmt.Printf("Saved %s (%d ms)\n", result.Path, result.DurationMs)
		return nil
	},
}

// logPublisher routes recorder events to the terminal when no webview is
// attached. Progress heartbeats are debug-level noise.
func logPublisher() events.Publisher {
	return events.PublisherFunc(func(name string, payload any) {
		switch name {
		case events.EventRecordingError:
			slog.Error("Recorder error", "detail", payload)
		case events.EventRecordingStatus:
			slog.Debug("Recording progress", "progress", payload)
		default:
			slog.Debug("Recorder event", "event", name, "payload", payload)
		}
	})
}
