package commands

import (
	"fmt"

	"github.com/hpusset/ELRI-sub001/internal/infrastructure/bcp47"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// BCP47CommandHandler answers subtag registry lookups
type BCP47CommandHandler struct {
	logger logger.Logger
}

// NewBCP47CommandHandler creates a BCP47CommandHandler
func NewBCP47CommandHandler() (*BCP47CommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	return &BCP47CommandHandler{logger: loggerInstance}, nil
}

// VariantsCmd prints the variant descriptions registered for a language,
// optionally narrowed by a script or a variant subtag
func (commandHandler *BCP47CommandHandler) VariantsCmd(cmd *cobra.Command, _ []string) {
	registryPath, err := cmd.Flags().GetString("registry")
	if err != nil {
		commandHandler.logger.Error("invalid registry flag", "error", err.Error())
		return
	}
	lang, err := cmd.Flags().GetString("lang")
	if err != nil {
		commandHandler.logger.Error("invalid lang flag", "error", err.Error())
		return
	}
	script, err := cmd.Flags().GetString("script")
	if err != nil {
		commandHandler.logger.Error("invalid script flag", "error", err.Error())
		return
	}
	variant, err := cmd.Flags().GetString("variant")
	if err != nil {
		commandHandler.logger.Error("invalid variant flag", "error", err.Error())
		return
	}

	registry, err := bcp47.Load(registryPath)
	if err != nil {
		commandHandler.logger.Error("failed to load subtag registry", "error", err.Error())
		return
	}

	var descriptions []string
	switch {
	case variant != "":
		descriptions = registry.VariantVariants(lang, variant)
	case script != "":
		descriptions = registry.ScriptVariants(lang, script)
	default:
		descriptions = registry.LanguageVariants(lang)
	}

	out := cmd.OutOrStdout()
	for _, d := range descriptions {
		fmt.Fprintln(out, d)
	}
}

// InitBCP47Commands registers the bcp47 command group
func InitBCP47Commands(rootCmd *cobra.Command) error {
	handler, err := NewBCP47CommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create BCP47 command handler: %w", err)
	}

	var bcp47Cmd = &cobra.Command{
		Use:   "bcp47",
		Short: "Look up IETF language subtags",
	}

	var variantsCmd = &cobra.Command{
		Use:   "variants",
		Short: "List registered variants for a language",
		Run:   handler.VariantsCmd,
	}
	variantsCmd.Flags().String("registry", "", "Path to a language-subtag-registry file (defaults to the bundled one)")
	variantsCmd.Flags().String("lang", "", "Language subtag")
	variantsCmd.Flags().String("script", "", "Script subtag")
	variantsCmd.Flags().String("variant", "", "Variant subtag")
	_ = variantsCmd.MarkFlagRequired("lang")
	bcp47Cmd.AddCommand(variantsCmd)

	rootCmd.AddCommand(bcp47Cmd)
	return nil
}
