package service

import (
	"context"
	"testing"

	domain "school-timetable/internal/domain/timetable"
	"school-timetable/internal/infrastructure/repository"
)

func TestSeedService_PopulatesEmptyStore(t *testing.T) {
	teacherRepo := repository.NewMockTeacherRepository()
	configRepo := repository.NewMockGradeSectionRepository()
	seedService := NewSeedService(teacherRepo, configRepo)
	ctx := context.Background()

	if err := seedService.Run(ctx); err != nil {
		t.Fatalf("Seeding failed: %v", err)
	}

	teachers, err := teacherRepo.GetAll(ctx)
	if err != nil {
		t.Fatalf("Failed to list teachers: %v", err)
	}
	if len(teachers) != len(domain.DefaultRoster) {
		t.Fatalf("Expected %d seeded teachers, got %d", len(domain.DefaultRoster), len(teachers))
	}

	seeded := make(map[string]string)
	for _, teacher := range teachers {
		seeded[teacher.Name] = teacher.Subject
	}
	for _, entry := range domain.DefaultRoster {
		if subject, exists := seeded[entry.Name]; !exists || subject != entry.Subject {
			t.Errorf("Expected roster entry %s (%s), got subject %q", entry.Name, entry.Subject, subject)
		}
	}

	cfgs, err := configRepo.GetAll(ctx)
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}
	if len(cfgs) != len(domain.DefaultGrades) {
		t.Fatalf("Expected %d grade configs, got %d", len(domain.DefaultGrades), len(cfgs))
	}
	for _, cfg := range cfgs {
		sections, err := cfg.SectionList()
		if err != nil {
			t.Fatalf("Failed to decode sections for grade %d: %v", cfg.Grade, err)
		}
		expected := domain.DefaultGradeSections[cfg.Grade]
		if len(sections) != len(expected) {
			t.Fatalf("Grade %d: expected %d sections, got %d", cfg.Grade, len(expected), len(sections))
		}
		for i, section := range expected {
			if sections[i] != section {
				t.Errorf("Grade %d section %d: expected %d, got %d", cfg.Grade, i, section, sections[i])
			}
		}
	}
}

func TestSeedService_IdempotentOnPopulatedStore(t *testing.T) {
	teacherRepo := repository.NewMockTeacherRepository()
	configRepo := repository.NewMockGradeSectionRepository()
	seedService := NewSeedService(teacherRepo, configRepo)
	ctx := context.Background()

	if err := seedService.Run(ctx); err != nil {
		t.Fatalf("First seeding failed: %v", err)
	}
	if err := seedService.Run(ctx); err != nil {
		t.Fatalf("Second seeding failed: %v", err)
	}

	count, err := teacherRepo.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count teachers: %v", err)
	}
	if count != int64(len(domain.DefaultRoster)) {
		t.Errorf("Expected %d teachers after re-seed, got %d", len(domain.DefaultRoster), count)
	}

	cfgCount, err := configRepo.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count configs: %v", err)
	}
	if cfgCount != int64(len(domain.DefaultGrades)) {
		t.Errorf("Expected %d configs after re-seed, got %d", len(domain.DefaultGrades), cfgCount)
	}
}
