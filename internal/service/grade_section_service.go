package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "school-timetable/internal/domain/timetable"
	"school-timetable/internal/infrastructure/cache"
	"school-timetable/pkg/logger"

	"github.com/google/uuid"
)

// GradeSectionService serves section-number configuration per grade,
// falling back to the built-in defaults for unconfigured grades.
type GradeSectionService struct {
	configRepo domain.GradeSectionRepository
	slotCache  SlotCache
}

// NewGradeSectionService creates a new grade-section service; slotCache
// may be nil
func NewGradeSectionService(configRepo domain.GradeSectionRepository, slotCache SlotCache) *GradeSectionService {
	return &GradeSectionService{
		configRepo: configRepo,
		slotCache:  slotCache,
	}
}

// GetSections returns the ordered section numbers of one grade. A grade
// with no stored config falls back to the default section list.
func (s *GradeSectionService) GetSections(ctx context.Context, grade int) ([]int, error) {
	cfg, err := s.configRepo.GetByGrade(ctx, grade)
	if err != nil {
		return nil, fmt.Errorf("failed to load config for grade %d: %w", grade, err)
	}
	if cfg == nil {
		sections := make([]int, len(domain.DefaultSections))
		copy(sections, domain.DefaultSections)
		return sections, nil
	}
	return cfg.SectionList()
}

// GetAll returns the grade -> ordered section numbers map. An entirely
// empty store yields the three-grade default map.
func (s *GradeSectionService) GetAll(ctx context.Context) (map[int][]int, error) {
	if s.slotCache != nil {
		sections, err := s.slotCache.GetGradeSections(ctx)
		if err == nil {
			return sections, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Debug("Grade sections cache read failed, falling back to store: %v", err)
		}
	}

	cfgs, err := s.configRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load grade-section configs: %w", err)
	}

	sections := make(map[int][]int)
	if len(cfgs) == 0 {
		for _, grade := range domain.DefaultGrades {
			sections[grade] = domain.SectionsForGrade(grade)
		}
	} else {
		for _, cfg := range cfgs {
			list, err := cfg.SectionList()
			if err != nil {
				return nil, err
			}
			sections[cfg.Grade] = list
		}
	}

	if s.slotCache != nil {
		if err := s.slotCache.SetGradeSections(ctx, sections, cache.GradeSectionsTTL); err != nil {
			logger.Debug("Failed to cache grade sections: %v", err)
		}
	}
	return sections, nil
}

// UpdateSections replaces the section list of one grade, creating the
// config if the grade had none stored
func (s *GradeSectionService) UpdateSections(ctx context.Context, grade int, sections []int) (*domain.GradeSectionConfig, error) {
	if len(sections) == 0 {
		return nil, errors.New("sections must not be empty")
	}

	cfg, err := s.configRepo.GetByGrade(ctx, grade)
	if err != nil {
		return nil, fmt.Errorf("failed to load config for grade %d: %w", grade, err)
	}

	if cfg == nil {
		cfg = &domain.GradeSectionConfig{
			ConfigID:  uuid.New(),
			Grade:     grade,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := cfg.SetSectionList(sections); err != nil {
			return nil, err
		}
		if err := s.configRepo.Create(ctx, cfg); err != nil {
			return nil, fmt.Errorf("failed to create config for grade %d: %w", grade, err)
		}
	} else {
		if err := cfg.SetSectionList(sections); err != nil {
			return nil, err
		}
		cfg.UpdatedAt = time.Now()
		if err := s.configRepo.Update(ctx, cfg); err != nil {
			return nil, fmt.Errorf("failed to update config for grade %d: %w", grade, err)
		}
	}

	if s.slotCache != nil {
		if err := s.slotCache.InvalidateGradeSections(ctx); err != nil {
			logger.Debug("Failed to invalidate grade sections cache: %v", err)
		}
	}

	logger.Info("Updated section list for grade %d: %v", grade, sections)
	return cfg, nil
}
