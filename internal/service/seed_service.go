package service

import (
	"context"
	"fmt"
	"time"

	domain "school-timetable/internal/domain/timetable"
	"school-timetable/pkg/logger"

	"github.com/google/uuid"
)

// SeedService populates an empty store with the default teacher roster
// and grade-section configs. Running it against a populated store is a
// no-op.
type SeedService struct {
	teacherRepo domain.TeacherRepository
	configRepo  domain.GradeSectionRepository
}

// NewSeedService creates a new seed service
func NewSeedService(teacherRepo domain.TeacherRepository, configRepo domain.GradeSectionRepository) *SeedService {
	return &SeedService{
		teacherRepo: teacherRepo,
		configRepo:  configRepo,
	}
}

// Run seeds defaults where the store is empty; idempotent
func (s *SeedService) Run(ctx context.Context) error {
	if err := s.seedTeachers(ctx); err != nil {
		return err
	}
	return s.seedGradeSections(ctx)
}

func (s *SeedService) seedTeachers(ctx context.Context) error {
	count, err := s.teacherRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count teachers: %w", err)
	}
	if count > 0 {
		logger.Debug("Teacher roster already populated (%d teachers), skipping seed", count)
		return nil
	}

	for _, entry := range domain.DefaultRoster {
		teacher := domain.NewTeacher(entry.Name, entry.Subject)
		if err := s.teacherRepo.Create(ctx, teacher); err != nil {
			return fmt.Errorf("failed to seed teacher %s: %w", entry.Name, err)
		}
	}

	logger.Info("Seeded %d default teachers", len(domain.DefaultRoster))
	return nil
}

func (s *SeedService) seedGradeSections(ctx context.Context) error {
	count, err := s.configRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count grade-section configs: %w", err)
	}
	if count > 0 {
		logger.Debug("Grade-section configs already populated (%d configs), skipping seed", count)
		return nil
	}

	for _, grade := range domain.DefaultGrades {
		cfg := &domain.GradeSectionConfig{
			ConfigID:  uuid.New(),
			Grade:     grade,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := cfg.SetSectionList(domain.SectionsForGrade(grade)); err != nil {
			return err
		}
		if err := s.configRepo.Create(ctx, cfg); err != nil {
			return fmt.Errorf("failed to seed config for grade %d: %w", grade, err)
		}
	}

	logger.Info("Seeded default grade-section configs for grades %v", domain.DefaultGrades)
	return nil
}
