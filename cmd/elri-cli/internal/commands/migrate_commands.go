package commands

import (
	"fmt"

	"github.com/hpusset/ELRI-sub001/internal/infrastructure/persistence"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// MigrateCommandHandler applies and reverts schema migrations
type MigrateCommandHandler struct {
	logger logger.Logger
}

// NewMigrateCommandHandler creates a MigrateCommandHandler
func NewMigrateCommandHandler() (*MigrateCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	return &MigrateCommandHandler{logger: loggerInstance}, nil
}

// MigrateCmd applies pending migrations, up to --to when given, or reverts the last one with --rollback
func (commandHandler *MigrateCommandHandler) MigrateCmd(cmd *cobra.Command, _ []string) {
	to, err := cmd.Flags().GetString("to")
	if err != nil {
		commandHandler.logger.Error("invalid to flag", "error", err.Error())
		return
	}
	rollback, err := cmd.Flags().GetBool("rollback")
	if err != nil {
		commandHandler.logger.Error("invalid rollback flag", "error", err.Error())
		return
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		commandHandler.logger.Error("failed to load configuration", "error", err.Error())
		return
	}

	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		commandHandler.logger.Error("failed to connect to database", "error", err.Error())
		return
	}
	defer func() { _ = persistence.CloseDB(db) }()

	switch {
	case rollback:
		err = persistence.RollbackLast(db)
	case to != "":
		err = persistence.MigrateTo(db, to)
	default:
		err = persistence.Migrate(db)
	}
	if err != nil {
		commandHandler.logger.Error("migration failed", "error", err.Error())
		return
	}
	commandHandler.logger.Info("database schema is up to date", "database", cfg.Database.Name)
}

// InitMigrateCommands registers the migrate command
func InitMigrateCommands(rootCmd *cobra.Command) error {
	handler, err := NewMigrateCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create migrate command handler: %w", err)
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		Run:   handler.MigrateCmd,
	}
	migrateCmd.Flags().String("to", "", "Apply migrations up to and including this ID")
	migrateCmd.Flags().Bool("rollback", false, "Revert the most recently applied migration")
	rootCmd.AddCommand(migrateCmd)

	return nil
}
