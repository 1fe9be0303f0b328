package service

import (
	"context"
	"testing"

	domain "school-timetable/internal/domain/timetable"
	"school-timetable/internal/infrastructure/repository"
)

func newTestTeacherService() (*TeacherService, domain.TeacherRepository, domain.ScheduleSlotRepository) {
	teacherRepo := repository.NewMockTeacherRepository()
	slotRepo := repository.NewMockScheduleSlotRepository()
	svc := NewTeacherService(teacherRepo, slotRepo, nil)
	return svc, teacherRepo, slotRepo
}

func TestTeacherService_CreateAndGet(t *testing.T) {
	svc, _, _ := newTestTeacherService()
	ctx := context.Background()

	req := &domain.CreateTeacherRequest{
		Name:    "Amina Yusuf",
		Subject: "Mathematics",
	}

	teacher, err := svc.CreateTeacher(ctx, req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if teacher == nil {
		t.Fatal("Expected teacher to be created, got nil")
	}
	if teacher.Name != req.Name {
		t.Errorf("Expected name %s, got %s", req.Name, teacher.Name)
	}
	if teacher.Subject != req.Subject {
		t.Errorf("Expected subject %s, got %s", req.Subject, teacher.Subject)
	}

	found, err := svc.GetTeacher(ctx, teacher.TeacherID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if found.TeacherID != teacher.TeacherID {
		t.Errorf("Expected teacher ID %s, got %s", teacher.TeacherID, found.TeacherID)
	}
}

func TestTeacherService_UpdatePartialFields(t *testing.T) {
	svc, _, _ := newTestTeacherService()
	ctx := context.Background()

	teacher, err := svc.CreateTeacher(ctx, &domain.CreateTeacherRequest{
		Name:    "Daniel Okello",
		Subject: "Physics",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	newSubject := "Astronomy"
	updated, err := svc.UpdateTeacher(ctx, teacher.TeacherID, &domain.UpdateTeacherRequest{
		Subject: &newSubject,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Subject != newSubject {
		t.Errorf("Expected subject %s, got %s", newSubject, updated.Subject)
	}
	if updated.Name != teacher.Name {
		t.Errorf("Expected name untouched, got %s", updated.Name)
	}
}

func TestTeacherService_DeleteLeavesSlotsDangling(t *testing.T) {
	svc, _, slotRepo := newTestTeacherService()
	ctx := context.Background()

	teacher, err := svc.CreateTeacher(ctx, &domain.CreateTeacherRequest{
		Name:    "Grace Nambi",
		Subject: "Chemistry",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	slot := &domain.ScheduleSlot{
		TeacherID: teacher.TeacherID,
		Grade:     10,
		Section:   1,
		Day:       domain.Monday,
		Period:    1,
	}
	if err := slotRepo.Create(ctx, slot); err != nil {
		t.Fatalf("Failed to create slot: %v", err)
	}

	if err := svc.DeleteTeacher(ctx, teacher.TeacherID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Deleting a teacher does not cascade into the slot set
	slots, err := slotRepo.GetByTeacher(ctx, teacher.TeacherID)
	if err != nil {
		t.Fatalf("Failed to load slots: %v", err)
	}
	if len(slots) != 1 {
		t.Errorf("Expected dangling slot to remain, got %d slots", len(slots))
	}
}

func TestTeacherService_GetUnknownTeacher(t *testing.T) {
	svc, _, _ := newTestTeacherService()

	_, err := svc.GetTeacher(context.Background(), domain.NewTeacher("x", "x").TeacherID)
	if err == nil {
		t.Fatal("Expected error for unknown teacher, got nil")
	}

	expectedError := "teacher not found"
	if err.Error() != expectedError {
		t.Errorf("Expected error message '%s', got '%s'", expectedError, err.Error())
	}
}
