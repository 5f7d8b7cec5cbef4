package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/hpusset/ELRI-sub001/internal/app"
	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/domain/stats"
	"github.com/hpusset/ELRI-sub001/internal/infrastructure/metadataxml"
	"github.com/hpusset/ELRI-sub001/internal/infrastructure/persistence"
	"github.com/hpusset/ELRI-sub001/internal/pkg/config"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// ConfigFlag names the persistent flag holding the configuration path
const ConfigFlag = "config"

// cliUser owns records created from the command line
const cliUser = "cli"

var errNoConfig = errors.New("no configuration file: pass --config or set CONFIG_PATH")

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// loadConfig reads the configuration named by --config or CONFIG_PATH
func loadConfig(cmd *cobra.Command) (*config.RestConfig, error) {
	path, err := cmd.Flags().GetString(ConfigFlag)
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		return nil, errNoConfig
	}
	return config.InitializeRestConfig(path)
}

// repositoryEnv bundles the database backed services used by the commands
type repositoryEnv struct {
	cfg        *config.RestConfig
	db         *gorm.DB
	submission resources.ResourceSubmissionService
	export     resources.ResourceExportService
	stats      stats.StatsService
}

func (e *repositoryEnv) Close() error {
	return persistence.CloseDB(e.db)
}

// openRepository connects and migrates the database and builds the resource services
func openRepository(cmd *cobra.Command, log logger.Logger) (*repositoryEnv, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}
	env := &repositoryEnv{cfg: cfg, db: db}

	if err := env.build(log); err != nil {
		_ = env.Close()
		return nil, err
	}
	return env, nil
}

func (e *repositoryEnv) build(log logger.Logger) error {
	if err := persistence.Migrate(e.db); err != nil {
		return err
	}

	resourceRepo, err := persistence.NewGormResourceRepository(e.db, log)
	if err != nil {
		return fmt.Errorf("failed to create resource repository: %w", err)
	}
	statsRepo, err := persistence.NewGormStatsRepository(e.db, log)
	if err != nil {
		return fmt.Errorf("failed to create statistics repository: %w", err)
	}
	codec, err := metadataxml.NewCodec(&e.cfg.Metadata)
	if err != nil {
		return fmt.Errorf("failed to create metadata codec: %w", err)
	}

	e.stats, err = app.NewStatsService(statsRepo, resourceRepo, codec, log)
	if err != nil {
		return fmt.Errorf("failed to create statistics service: %w", err)
	}
	e.submission, err = app.NewResourceSubmissionService(resourceRepo, codec, e.stats, log)
	if err != nil {
		return fmt.Errorf("failed to create submission service: %w", err)
	}
	e.export, err = app.NewResourceExportService(resourceRepo, codec, e.submission, e.stats, log)
	if err != nil {
		return fmt.Errorf("failed to create export service: %w", err)
	}
	return nil
}
