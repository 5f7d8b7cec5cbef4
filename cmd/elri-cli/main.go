// Package main is the entry point for the elri-cli application.
// It registers the maintenance sub-commands (migrations, resource import and
// export, e-Delivery pull, translation memory upload, subtag lookups) and
// executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hpusset/ELRI-sub001/cmd/elri-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "elri-cli",
		Short: "ELRI relay station maintenance tool",
		Long: `elri-cli performs maintenance tasks against an ELRI relay station.
It reads the same YAML configuration as the REST server. The file is chosen by
the --config flag or the CONFIG_PATH environment variable; ELRI_ prefixed
environment variables override single values.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String(commands.ConfigFlag, "", "Path to the configuration file (defaults to CONFIG_PATH)")

	// Register all command groups before executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitMigrateCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize migrate commands: %w", err)
	}

	if err := commands.InitResourceCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize resource commands: %w", err)
	}

	if err := commands.InitEDeliveryCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize e-Delivery commands: %w", err)
	}

	if err := commands.InitTMCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize translation memory commands: %w", err)
	}

	if err := commands.InitBCP47Commands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize BCP47 commands: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
