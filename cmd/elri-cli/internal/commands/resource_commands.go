package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// ResourceCommandHandler moves metadata records in and out of the repository
type ResourceCommandHandler struct {
	logger logger.Logger
}

// NewResourceCommandHandler creates a ResourceCommandHandler
func NewResourceCommandHandler() (*ResourceCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	return &ResourceCommandHandler{logger: loggerInstance}, nil
}

// ImportCmd submits an XML or JSON metadata document from disk
func (commandHandler *ResourceCommandHandler) ImportCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag", "error", err.Error())
		return
	}
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		commandHandler.logger.Error("invalid name flag", "error", err.Error())
		return
	}
	owner, err := cmd.Flags().GetString("owner")
	if err != nil {
		commandHandler.logger.Error("invalid owner flag", "error", err.Error())
		return
	}

	document, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error("failed to read input file", "error", err.Error())
		return
	}

	env, err := openRepository(cmd, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error("failed to open repository", "error", err.Error())
		return
	}
	defer func() { _ = env.Close() }()

	ctx := context.Background()
	var resource *resources.ResourceMeta
	if filepath.Ext(inputFilePath) == ".json" {
		resource, err = env.export.ImportJSON(ctx, name, owner, document)
	} else {
		resource, err = env.submission.Submit(ctx, &resources.SubmissionRequest{
			ResourceName: name,
			MetadataXML:  document,
			OwnerID:      owner,
			Source:       resources.SourceImport,
		})
	}
	if err != nil {
		commandHandler.logger.Error("import failed", "file", inputFilePath, "error", err.Error())
		return
	}
	commandHandler.logger.Info("resource imported", "id", resource.ID, "name", resource.ResourceName)
}

// ExportCmd writes a stored record as XML or JSON
func (commandHandler *ResourceCommandHandler) ExportCmd(cmd *cobra.Command, _ []string) {
	resourceID, err := cmd.Flags().GetString("id")
	if err != nil {
		commandHandler.logger.Error("invalid id flag", "error", err.Error())
		return
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		commandHandler.logger.Error("invalid format flag", "error", err.Error())
		return
	}
	outputFilePath, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag", "error", err.Error())
		return
	}
	if format != "xml" && format != "json" {
		commandHandler.logger.Error("unsupported export format", "format", format)
		return
	}

	env, err := openRepository(cmd, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error("failed to open repository", "error", err.Error())
		return
	}
	defer func() { _ = env.Close() }()

	ctx := context.Background()
	var data []byte
	if format == "json" {
		data, err = env.export.ExportJSON(ctx, resourceID, cliUser)
	} else {
		data, err = env.export.ExportXML(ctx, resourceID, cliUser)
	}
	if err != nil {
		commandHandler.logger.Error("export failed", "id", resourceID, "error", err.Error())
		return
	}

	if outputFilePath == "" {
		outputFilePath = resourceID + "." + format
	}
	if err := os.WriteFile(outputFilePath, data, 0600); err != nil {
		commandHandler.logger.Error("failed to write output file", "error", err.Error())
		return
	}
	commandHandler.logger.Info("resource exported", "id", resourceID, "file", outputFilePath)
}

// InitResourceCommands registers the resource command group
func InitResourceCommands(rootCmd *cobra.Command) error {
	handler, err := NewResourceCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create resource command handler: %w", err)
	}

	var resourceCmd = &cobra.Command{
		Use:   "resource",
		Short: "Import and export metadata records",
	}

	var importCmd = &cobra.Command{
		Use:   "import",
		Short: "Import a metadata document (.xml or .json)",
		Run:   handler.ImportCmd,
	}
	importCmd.Flags().String("input-file", "", "Path to the metadata document")
	importCmd.Flags().String("name", "", "Resource name")
	importCmd.Flags().String("owner", cliUser, "Owner of the new record")
	_ = importCmd.MarkFlagRequired("input-file")
	_ = importCmd.MarkFlagRequired("name")
	resourceCmd.AddCommand(importCmd)

	var exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export a metadata record",
		Run:   handler.ExportCmd,
	}
	exportCmd.Flags().String("id", "", "Resource ID")
	exportCmd.Flags().String("format", "xml", "Export format: xml or json")
	exportCmd.Flags().String("output-file", "", "Output path (defaults to <id>.<format>)")
	_ = exportCmd.MarkFlagRequired("id")
	resourceCmd.AddCommand(exportCmd)

	rootCmd.AddCommand(resourceCmd)
	return nil
}
