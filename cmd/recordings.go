package cmd

import (
	"fmt"
	"time"

	"github.com/rajeshpachaikani/honeybee-kiosk-app/internal/recorder"

	"github.com/spf13/cobra"
)

var recordingsCmd = &cobra.Command{
	Use:   "recordings",
	Short: "List stored recordings",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib := recorder.NewLibrary(cfg.RecordingsDirectory())

		recordings, err := lib.List()
		if err != nil {
			return fmt.Errorf("failed to list recordings: %w", err)
		}

		if len(recordings) == 0 {
			fmt.Println("No recordings found in", cfg.RecordingsDirectory())
			return nil
		}

		fmt.Printf("%-32s %12s  %s\n", "FILENAME", "SIZE", "MODIFIED")
		for _, rec := range recordings {
			modified := time.Unix(rec.Modified, 0).Format("2006-01-02 15:04:05")
			fmt.Printf("%-32s %12d  %s\n", rec.Filename, rec.Size, modified)
		}

		return nil
	},
}
