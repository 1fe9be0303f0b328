package service

import (
	"context"
	"testing"

	domain "school-timetable/internal/domain/timetable"
	"school-timetable/internal/infrastructure/repository"
)

func TestGradeSectionService_SingleGradeFallback(t *testing.T) {
	configRepo := repository.NewMockGradeSectionRepository()
	svc := NewGradeSectionService(configRepo, nil)

	// No stored record for the queried grade
	sections, err := svc.GetSections(context.Background(), 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := []int{1, 2, 3, 4, 5, 6, 7}
	if len(sections) != len(expected) {
		t.Fatalf("Expected %d fallback sections, got %d", len(expected), len(sections))
	}
	for i, section := range expected {
		if sections[i] != section {
			t.Errorf("Section %d: expected %d, got %d", i, section, sections[i])
		}
	}
}

func TestGradeSectionService_AllGradesFallback(t *testing.T) {
	configRepo := repository.NewMockGradeSectionRepository()
	svc := NewGradeSectionService(configRepo, nil)

	// Entirely empty store yields the three-grade default map
	all, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 default grades, got %d", len(all))
	}

	for grade, expected := range domain.DefaultGradeSections {
		sections, exists := all[grade]
		if !exists {
			t.Fatalf("Expected grade %d in fallback map", grade)
		}
		if len(sections) != len(expected) {
			t.Fatalf("Grade %d: expected %d sections, got %d", grade, len(expected), len(sections))
		}
		for i, section := range expected {
			if sections[i] != section {
				t.Errorf("Grade %d section %d: expected %d, got %d", grade, i, section, sections[i])
			}
		}
	}
}

func TestGradeSectionService_StoredConfigWins(t *testing.T) {
	configRepo := repository.NewMockGradeSectionRepository()
	svc := NewGradeSectionService(configRepo, nil)
	ctx := context.Background()

	if _, err := svc.UpdateSections(ctx, 10, []int{1, 2, 3}); err != nil {
		t.Fatalf("Failed to store config: %v", err)
	}

	sections, err := svc.GetSections(ctx, 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(sections) != 3 {
		t.Fatalf("Expected stored config to win over defaults, got %d sections", len(sections))
	}

	// Other grades still fall back
	all, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected only stored grades once any config exists, got %d", len(all))
	}
}

func TestGradeSectionService_RejectsEmptySections(t *testing.T) {
	configRepo := repository.NewMockGradeSectionRepository()
	svc := NewGradeSectionService(configRepo, nil)

	if _, err := svc.UpdateSections(context.Background(), 10, nil); err == nil {
		t.Fatal("Expected error for empty section list, got nil")
	}
}
