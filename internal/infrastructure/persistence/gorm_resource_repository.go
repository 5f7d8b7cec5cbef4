package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/infrastructure/persistence/models"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormResourceRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormResourceRepository creates a new GORM-based ResourceRepository implementation
func NewGormResourceRepository(db *gorm.DB, logger logger.Logger) (resources.ResourceRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	return &gormResourceRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormResourceRepository) Create(ctx context.Context, resource *resources.ResourceMeta) error {
	if err := resource.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ResourceModel{}
	model.FromDomain(resource)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	r.logger.Info("Created resource metadata with id ", resource.ID)
	return nil
}

func (r *gormResourceRepository) List(ctx context.Context, query *resources.ResourceQuery) ([]*resources.ResourceMeta, error) {
	if query == nil {
		query = resources.NewResourceQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.ResourceModel
	dbQuery := r.db.WithContext(ctx).Model(&models.ResourceModel{}).Preload("Contacts")

	if query.ResourceName != "" {
		dbQuery = dbQuery.Where("resource_name LIKE ?", "%"+query.ResourceName+"%")
	}
	if query.PublicationStatus != "" {
		dbQuery = dbQuery.Where("publication_status = ?", string(query.PublicationStatus))
	}
	if query.OwnerID != "" {
		dbQuery = dbQuery.Where("owner_id = ?", query.OwnerID)
	}
	if query.Source != "" {
		dbQuery = dbQuery.Where("source = ?", query.Source)
	}

	if query.SortBy != "" {
		dbQuery = dbQuery.Order(clause.OrderByColumn{
			Column: clause.Column{Name: query.SortBy},
			Desc:   query.SortOrder == "desc",
		})
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch resources: %w", err)
	}

	domainList := make([]*resources.ResourceMeta, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormResourceRepository) GetByID(ctx context.Context, resourceID string) (*resources.ResourceMeta, error) {
	var model models.ResourceModel
	err := r.db.WithContext(ctx).Preload("Contacts").Where("id = ?", resourceID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", resources.ErrNotFound, resourceID)
		}
		return nil, fmt.Errorf("failed to fetch resource: %w", err)
	}
	return model.ToDomain(), nil
}

// UpdateByID saves the record and replaces its contact list
func (r *gormResourceRepository) UpdateByID(ctx context.Context, resource *resources.ResourceMeta) error {
	if err := resource.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ResourceModel{}
	model.FromDomain(resource)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.ResourceModel{}).Where("id = ?", resource.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing == 0 {
			return fmt.Errorf("%w: %s", resources.ErrNotFound, resource.ID)
		}

		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("resource_id = ?", resource.ID).Delete(&models.ContactPersonModel{}).Error; err != nil {
			return err
		}
		if len(model.Contacts) > 0 {
			if err := tx.Create(&model.Contacts).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, resources.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to update resource: %w", err)
	}

	r.logger.Info("Updated resource metadata with id ", resource.ID)
	return nil
}

func (r *gormResourceRepository) DeleteByID(ctx context.Context, resourceID string) error {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resource_id = ?", resourceID).Delete(&models.ContactPersonModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", resourceID).Delete(&models.ResourceModel{})
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", resources.ErrNotFound, resourceID)
	}

	r.logger.Info("Deleted resource metadata with id ", resourceID)
	return nil
}

func (r *gormResourceRepository) CountByStatus(ctx context.Context) (map[resources.PublicationStatus]int64, error) {
	var rows []struct {
		PublicationStatus string
		Total             int64
	}
	err := r.db.WithContext(ctx).Model(&models.ResourceModel{}).
		Select("publication_status, COUNT(*) AS total").
		Group("publication_status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count resources: %w", err)
	}

	counts := make(map[resources.PublicationStatus]int64, len(rows))
	for _, row := range rows {
		counts[resources.PublicationStatus(row.PublicationStatus)] = row.Total
	}
	return counts, nil
}
