package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/hpusset/ELRI-sub001/internal/domain/processing"
	"github.com/hpusset/ELRI-sub001/internal/infrastructure/persistence/models"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormJobRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormJobRepository creates a new GORM-based JobRepository implementation
func NewGormJobRepository(db *gorm.DB, logger logger.Logger) (processing.JobRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	return &gormJobRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormJobRepository) Create(ctx context.Context, job *processing.Job) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.JobModel{}
	model.FromDomain(job)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	r.logger.Info("Created processing job with id ", job.ID)
	return nil
}

func (r *gormJobRepository) GetByID(ctx context.Context, jobID string) (*processing.Job, error) {
	var model models.JobModel
	if err := r.db.WithContext(ctx).Where("id = ?", jobID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", processing.ErrJobNotFound, jobID)
		}
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormJobRepository) UpdateByID(ctx context.Context, job *processing.Job) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.JobModel{}
	model.FromDomain(job)
	result := r.db.WithContext(ctx).Model(&models.JobModel{}).Where("id = ?", job.ID).
		Select("*").Omit("id", "date_time_created").Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", processing.ErrJobNotFound, job.ID)
	}

	r.logger.Debug("Updated processing job ", job.ID, " to ", string(job.Status))
	return nil
}

func (r *gormJobRepository) ListByUser(ctx context.Context, userID string) ([]*processing.Job, error) {
	var modelList []*models.JobModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date_time_created DESC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch jobs: %w", err)
	}

	jobs := make([]*processing.Job, len(modelList))
	for i, model := range modelList {
		jobs[i] = model.ToDomain()
	}
	return jobs, nil
}
