package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskflow/config"
	"taskflow/logging"
)

var version = "0.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "taskflow — force-directed task graph editor",
	Long: Brand.Sprint("taskflow") + " — lay out and edit task dependency graphs\n" +
		Subtle.Sprint("Tasks settle under a force simulation while you connect and drag them"),
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.SetVersionTemplate("taskflow {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (defaults built in)")

	rootCmd.AddCommand(
		runCmd(),
		layoutCmd(),
		scriptCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

// openLog returns a logger appending to path, or a no-op logger when path
// is empty. The returned func closes the file.
func openLog(path string) (logging.Logger, func(), error) {
	if path == "" {
		return logging.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logging.New(f), func() { f.Close() }, nil
}
