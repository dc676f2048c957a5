package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/masterphooey/wakeword-recorder-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "recorder-api",
	Short: "Wake-word recorder and trainer API server",
	Long: `Wakeword Recorder API - a single-operator service for collecting
labeled wake-word samples and training on-device detection models.

Features:
  • Multi-speaker recording sessions with per-speaker take tracking
  • Automatic language detection and phrase transliteration
  • Background training runs with live log streaming
  • Training run history
  • Model packaging for on-device deployment`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Set up configuration loading with lazy initialization
	cobra.OnInitialize(loadConfig)
}

// loadConfig loads the configuration when a command needs it
// This is called lazily only when a command that needs config runs
func loadConfig() {
	// Skip config loading for commands that don't need it
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	// Initialize the configuration
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
