package cmd

import (
	"fmt"

	"github.com/rajeshpachaikani/honeybee-kiosk-app/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the kiosk configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}

		if err := config.Default().Write(path); err != nil {
			return err
		}

		fmt.Println("Wrote default configuration to", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("config file:         ", cfgFile)
		fmt.Println("server.port:         ", cfg.Server.Port)
		fmt.Println("recordings directory:", cfg.RecordingsDirectory())
		fmt.Println("file prefix:         ", cfg.Recorder.FilePrefix)
		fmt.Printf("progress interval:    %d ms\n", cfg.Recorder.ProgressIntervalMs)
		fmt.Printf("stop poll:            %d x %d ms\n", cfg.Recorder.StopPollAttempts, cfg.Recorder.StopPollIntervalMs)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
