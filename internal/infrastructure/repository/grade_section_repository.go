package repository

import (
	"context"

	domain "school-timetable/internal/domain/timetable"

	"gorm.io/gorm"
)

// GradeSectionRepository implements domain.GradeSectionRepository using GORM
type GradeSectionRepository struct {
	db *gorm.DB
}

// NewGradeSectionRepository creates a new GORM grade-section config repository
func NewGradeSectionRepository(db *gorm.DB) domain.GradeSectionRepository {
	return &GradeSectionRepository{
		db: db,
	}
}

// Create creates a new grade-section config
func (r *GradeSectionRepository) Create(ctx context.Context, cfg *domain.GradeSectionConfig) error {
	return r.db.WithContext(ctx).Create(cfg).Error
}

// GetByGrade retrieves the config for one grade, nil when absent
func (r *GradeSectionRepository) GetByGrade(ctx context.Context, grade int) (*domain.GradeSectionConfig, error) {
	var cfg domain.GradeSectionConfig
	err := r.db.WithContext(ctx).First(&cfg, "grade = ?", grade).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// GetAll retrieves every stored grade-section config ordered by grade
func (r *GradeSectionRepository) GetAll(ctx context.Context) ([]*domain.GradeSectionConfig, error) {
	var cfgs []*domain.GradeSectionConfig
	err := r.db.WithContext(ctx).Order("grade").Find(&cfgs).Error
	if err != nil {
		return nil, err
	}
	return cfgs, nil
}

// Update persists a changed section list
func (r *GradeSectionRepository) Update(ctx context.Context, cfg *domain.GradeSectionConfig) error {
	return r.db.WithContext(ctx).Model(cfg).
		Where("config_id = ?", cfg.ConfigID).
		Updates(map[string]interface{}{
			"sections":   cfg.Sections,
			"updated_at": cfg.UpdatedAt,
		}).Error
}

// Count returns the number of stored configs
func (r *GradeSectionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.GradeSectionConfig{}).Count(&count).Error
	return count, err
}
