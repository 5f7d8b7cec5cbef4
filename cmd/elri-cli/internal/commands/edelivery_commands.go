package commands

import (
	"context"
	"fmt"

	"github.com/hpusset/ELRI-sub001/internal/app"
	"github.com/hpusset/ELRI-sub001/internal/infrastructure/connector"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// EDeliveryCommandHandler pulls pending messages from the access point
type EDeliveryCommandHandler struct {
	logger logger.Logger
}

// NewEDeliveryCommandHandler creates an EDeliveryCommandHandler
func NewEDeliveryCommandHandler() (*EDeliveryCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	return &EDeliveryCommandHandler{logger: loggerInstance}, nil
}

// PullCmd ingests every pending message as a resource record
func (commandHandler *EDeliveryCommandHandler) PullCmd(cmd *cobra.Command, _ []string) {
	owner, err := cmd.Flags().GetString("owner")
	if err != nil {
		commandHandler.logger.Error("invalid owner flag", "error", err.Error())
		return
	}

	env, err := openRepository(cmd, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error("failed to open repository", "error", err.Error())
		return
	}
	defer func() { _ = env.Close() }()

	client, err := connector.GetEDeliveryConnector(&env.cfg.EDelivery, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error("failed to create e-Delivery connector", "error", err.Error())
		return
	}

	ingestService, err := app.NewEDeliveryIngestService(client, env.submission, env.stats, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error("failed to create ingest service", "error", err.Error())
		return
	}

	report, err := ingestService.Pull(context.Background(), owner)
	if err != nil {
		commandHandler.logger.Error("pull failed", "error", err.Error())
		return
	}
	commandHandler.logger.Info("pull finished", "ingested", len(report.Ingested), "failed", len(report.Failed))
}

// InitEDeliveryCommands registers the edelivery command group
func InitEDeliveryCommands(rootCmd *cobra.Command) error {
	handler, err := NewEDeliveryCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create e-Delivery command handler: %w", err)
	}

	var edeliveryCmd = &cobra.Command{
		Use:   "edelivery",
		Short: "Interact with the e-Delivery access point",
	}

	var pullCmd = &cobra.Command{
		Use:   "pull",
		Short: "Ingest all pending e-Delivery messages",
		Run:   handler.PullCmd,
	}
	pullCmd.Flags().String("owner", cliUser, "Owner of the ingested records")
	edeliveryCmd.AddCommand(pullCmd)

	rootCmd.AddCommand(edeliveryCmd)
	return nil
}
