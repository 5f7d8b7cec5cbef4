package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpusset/ELRI-sub001/internal/app"
	"github.com/hpusset/ELRI-sub001/internal/infrastructure/connector"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// TMCommandHandler loads TMX files into the translation memory
type TMCommandHandler struct {
	logger logger.Logger
}

// NewTMCommandHandler creates a TMCommandHandler
func NewTMCommandHandler() (*TMCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	return &TMCommandHandler{logger: loggerInstance}, nil
}

// AddCmd validates a TMX file and stores it in BaseX
func (commandHandler *TMCommandHandler) AddCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag", "error", err.Error())
		return
	}
	database, err := cmd.Flags().GetString("database")
	if err != nil {
		commandHandler.logger.Error("invalid database flag", "error", err.Error())
		return
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		commandHandler.logger.Error("failed to load configuration", "error", err.Error())
		return
	}
	if database == "" {
		database = cfg.BaseX.DefaultDatabase
	}

	tmx, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error("failed to read input file", "error", err.Error())
		return
	}

	opener, err := connector.NewBaseXConnector(&cfg.BaseX, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error("failed to create BaseX connector", "error", err.Error())
		return
	}
	tmService, err := app.NewTMService(opener, database, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error("failed to create translation memory service", "error", err.Error())
		return
	}

	doc, err := tmService.AddDocument(context.Background(), filepath.Base(inputFilePath), tmx)
	if err != nil {
		commandHandler.logger.Error("failed to add TMX document", "file", inputFilePath, "error", err.Error())
		return
	}
	commandHandler.logger.Info("TMX document stored",
		"path", doc.Path,
		"units", doc.Units,
		"languages", strings.Join(doc.Languages, ","))
}

// InitTMCommands registers the tm command group
func InitTMCommands(rootCmd *cobra.Command) error {
	handler, err := NewTMCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create translation memory command handler: %w", err)
	}

	var tmCmd = &cobra.Command{
		Use:   "tm",
		Short: "Manage the translation memory",
	}

	var addCmd = &cobra.Command{
		Use:   "add",
		Short: "Add a TMX document to the translation memory",
		Run:   handler.AddCmd,
	}
	addCmd.Flags().String("input-file", "", "Path to the TMX document")
	addCmd.Flags().String("database", "", "BaseX database (defaults to basex.default_database)")
	_ = addCmd.MarkFlagRequired("input-file")
	tmCmd.AddCommand(addCmd)

	rootCmd.AddCommand(tmCmd)
	return nil
}
