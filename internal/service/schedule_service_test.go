package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	domain "school-timetable/internal/domain/timetable"
	"school-timetable/internal/infrastructure/repository"

	"github.com/google/uuid"
)

func newTestScheduleService() (*ScheduleService, domain.ScheduleSlotRepository, domain.TeacherRepository) {
	slotRepo := repository.NewMockScheduleSlotRepository()
	teacherRepo := repository.NewMockTeacherRepository()
	svc := NewScheduleService(slotRepo, teacherRepo, nil, nil)
	return svc, slotRepo, teacherRepo
}

func mustCreateTeacher(t *testing.T, repo domain.TeacherRepository, name, subject string) *domain.Teacher {
	t.Helper()
	teacher := domain.NewTeacher(name, subject)
	if err := repo.Create(context.Background(), teacher); err != nil {
		t.Fatalf("Failed to create teacher: %v", err)
	}
	return teacher
}

// snapshot returns all slots outside the given grade/section keyed by ID
func snapshot(t *testing.T, repo domain.ScheduleSlotRepository, excludeGrade, excludeSection int) map[uuid.UUID]domain.ScheduleSlot {
	t.Helper()
	all, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("Failed to snapshot slots: %v", err)
	}
	out := make(map[uuid.UUID]domain.ScheduleSlot)
	for _, slot := range all {
		if slot.Grade == excludeGrade && slot.Section == excludeSection {
			continue
		}
		out[slot.SlotID] = *slot
	}
	return out
}

func TestApplyPartialUpdate_InsertAndOverride(t *testing.T) {
	svc, _, teacherRepo := newTestScheduleService()
	ctx := context.Background()

	teacherA := mustCreateTeacher(t, teacherRepo, "Amina Yusuf", "Mathematics")
	teacherB := mustCreateTeacher(t, teacherRepo, "Daniel Okello", "Physics")

	// First save inserts two cells
	result, err := svc.ApplyPartialUpdate(ctx, 10, 1, []domain.SlotChange{
		{Day: domain.Monday, Period: 1, TeacherID: teacherA.TeacherID.String()},
		{Day: domain.Monday, Period: 2, TeacherID: teacherB.TeacherID.String()},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.NoChanges {
		t.Error("Expected a real save, got no-changes result")
	}
	if len(result.Slots) != 2 {
		t.Fatalf("Expected 2 persisted slots, got %d", len(result.Slots))
	}

	// Second save overrides one cell only
	result, err = svc.ApplyPartialUpdate(ctx, 10, 1, []domain.SlotChange{
		{Day: domain.Monday, Period: 1, TeacherID: teacherB.TeacherID.String()},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(result.Slots) != 2 {
		t.Fatalf("Expected 2 persisted slots after override, got %d", len(result.Slots))
	}
	for _, slot := range result.Slots {
		if slot.Period == 1 && slot.TeacherID != teacherB.TeacherID {
			t.Errorf("Expected monday/1 reassigned to teacher B, got %s", slot.TeacherID)
		}
		if slot.Period == 2 && slot.TeacherID != teacherB.TeacherID {
			t.Errorf("Expected monday/2 untouched with teacher B, got %s", slot.TeacherID)
		}
	}
}

func TestApplyPartialUpdate_Idempotent(t *testing.T) {
	svc, _, teacherRepo := newTestScheduleService()
	ctx := context.Background()

	teacherA := mustCreateTeacher(t, teacherRepo, "Grace Nambi", "Chemistry")

	changes := []domain.SlotChange{
		{Day: domain.Tuesday, Period: 3, TeacherID: teacherA.TeacherID.String()},
		{Day: domain.Friday, Period: 8, TeacherID: ""},
	}

	first, err := svc.ApplyPartialUpdate(ctx, 11, 2, changes)
	if err != nil {
		t.Fatalf("First apply failed: %v", err)
	}
	second, err := svc.ApplyPartialUpdate(ctx, 11, 2, changes)
	if err != nil {
		t.Fatalf("Second apply failed: %v", err)
	}

	cells := func(slots []*domain.ScheduleSlot) []domain.CellKey {
		var out []domain.CellKey
		for _, slot := range slots {
			out = append(out, slot.Cell())
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
		return out
	}

	firstCells, secondCells := cells(first.Slots), cells(second.Slots)
	if len(firstCells) != len(secondCells) {
		t.Fatalf("Expected identical schedules, got %d vs %d cells", len(firstCells), len(secondCells))
	}
	for i := range firstCells {
		if firstCells[i] != secondCells[i] {
			t.Errorf("Cell %d differs: %v vs %v", i, firstCells[i], secondCells[i])
		}
	}
}

func TestApplyPartialUpdate_ClearingRemovesSlot(t *testing.T) {
	svc, _, teacherRepo := newTestScheduleService()
	ctx := context.Background()

	teacherA := mustCreateTeacher(t, teacherRepo, "Henry Ssemwanga", "Biology")

	_, err := svc.ApplyPartialUpdate(ctx, 12, 4, []domain.SlotChange{
		{Day: domain.Wednesday, Period: 5, TeacherID: teacherA.TeacherID.String()},
	})
	if err != nil {
		t.Fatalf("Setup save failed: %v", err)
	}

	result, err := svc.ApplyPartialUpdate(ctx, 12, 4, []domain.SlotChange{
		{Day: domain.Wednesday, Period: 5, TeacherID: ""},
	})
	if err != nil {
		t.Fatalf("Clearing save failed: %v", err)
	}
	if len(result.Slots) != 0 {
		t.Fatalf("Expected empty schedule after clearing, got %d slots", len(result.Slots))
	}

	// A subsequent read shows no teacher for that cell
	slots, err := svc.GetGradeSectionSchedule(ctx, 12, 4)
	if err != nil {
		t.Fatalf("Read after clear failed: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("Expected no slots on re-read, got %d", len(slots))
	}
}

func TestApplyPartialUpdate_ConflictBlocksSave(t *testing.T) {
	svc, slotRepo, teacherRepo := newTestScheduleService()
	ctx := context.Background()

	teacherA := mustCreateTeacher(t, teacherRepo, "Amina Yusuf", "Mathematics")

	// Grade 10/1 has teacher A at monday period 1
	if _, err := svc.ApplyPartialUpdate(ctx, 10, 1, []domain.SlotChange{
		{Day: domain.Monday, Period: 1, TeacherID: teacherA.TeacherID.String()},
	}); err != nil {
		t.Fatalf("Setup save failed: %v", err)
	}

	before := snapshot(t, slotRepo, 10, 2)

	// Proposing teacher A for grade 10/2 at the same cell must be blocked
	_, err := svc.ApplyPartialUpdate(ctx, 10, 2, []domain.SlotChange{
		{Day: domain.Monday, Period: 1, TeacherID: teacherA.TeacherID.String()},
	})
	if err == nil {
		t.Fatal("Expected conflict error, got nil")
	}

	var conflictErr *domain.ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("Expected ConflictError, got %T: %v", err, err)
	}
	if len(conflictErr.Conflicts) != 1 {
		t.Fatalf("Expected 1 conflict, got %d", len(conflictErr.Conflicts))
	}
	desc := conflictErr.Conflicts[0].Descriptions[0]
	if want := "Amina Yusuf"; !strings.Contains(desc, want) {
		t.Errorf("Expected description naming %q, got %q", want, desc)
	}
	if want := "10/1"; !strings.Contains(desc, want) {
		t.Errorf("Expected description naming %q, got %q", want, desc)
	}

	// Store unchanged: nothing saved for 10/2, nothing else disturbed
	target, err := slotRepo.GetByGradeSection(ctx, 10, 2)
	if err != nil {
		t.Fatalf("Failed to load target slots: %v", err)
	}
	if len(target) != 0 {
		t.Errorf("Expected no slots persisted for blocked save, got %d", len(target))
	}
	after := snapshot(t, slotRepo, 10, 2)
	assertSnapshotsEqual(t, before, after)
}

func TestApplyPartialUpdate_IsolationAcrossGradeSections(t *testing.T) {
	svc, slotRepo, teacherRepo := newTestScheduleService()
	ctx := context.Background()

	teacherA := mustCreateTeacher(t, teacherRepo, "Irene Auma", "English")
	teacherB := mustCreateTeacher(t, teacherRepo, "Joseph Mugisha", "History")

	// Populate several other grade/sections at distinct periods so the
	// setup itself is conflict-free
	for i, target := range []struct{ grade, section int }{{10, 1}, {10, 2}, {12, 7}} {
		if _, err := svc.ApplyPartialUpdate(ctx, target.grade, target.section, []domain.SlotChange{
			{Day: domain.Thursday, Period: i + 3, TeacherID: teacherA.TeacherID.String()},
		}); err != nil {
			t.Fatalf("Setup save for %d/%d failed: %v", target.grade, target.section, err)
		}
	}

	before := snapshot(t, slotRepo, 11, 2)

	if _, err := svc.ApplyPartialUpdate(ctx, 11, 2, []domain.SlotChange{
		{Day: domain.Monday, Period: 1, TeacherID: teacherB.TeacherID.String()},
		{Day: domain.Thursday, Period: 2, TeacherID: teacherB.TeacherID.String()},
	}); err != nil {
		t.Fatalf("Save for 11/2 failed: %v", err)
	}

	after := snapshot(t, slotRepo, 11, 2)
	assertSnapshotsEqual(t, before, after)
}

func TestApplyPartialUpdate_NoChanges(t *testing.T) {
	svc, _, _ := newTestScheduleService()

	result, err := svc.ApplyPartialUpdate(context.Background(), 10, 1, nil)
	if err != nil {
		t.Fatalf("Expected no error for empty changes, got %v", err)
	}
	if !result.NoChanges {
		t.Error("Expected no-changes result for empty change set")
	}
}

func TestCheckConflicts_CleanEffectiveSchedule(t *testing.T) {
	svc, _, teacherRepo := newTestScheduleService()
	ctx := context.Background()

	teacherA := mustCreateTeacher(t, teacherRepo, "Maria Nakato", "Geography")
	teacherB := mustCreateTeacher(t, teacherRepo, "Peter Wasswa", "Computer Science")

	if _, err := svc.ApplyPartialUpdate(ctx, 10, 1, []domain.SlotChange{
		{Day: domain.Monday, Period: 1, TeacherID: teacherA.TeacherID.String()},
	}); err != nil {
		t.Fatalf("Setup save failed: %v", err)
	}

	conflicts, err := svc.CheckConflicts(ctx, 10, 2, []domain.SlotChange{
		{Day: domain.Monday, Period: 1, TeacherID: teacherB.TeacherID.String()},
	})
	if err != nil {
		t.Fatalf("CheckConflicts failed: %v", err)
	}
	if len(conflicts) != 0 {
		t.Fatalf("Expected no conflicts, got %d", len(conflicts))
	}
}

func assertSnapshotsEqual(t *testing.T, before, after map[uuid.UUID]domain.ScheduleSlot) {
	t.Helper()
	if len(before) != len(after) {
		t.Fatalf("Slot count outside target changed: %d before, %d after", len(before), len(after))
	}
	for id, slot := range before {
		got, exists := after[id]
		if !exists {
			t.Errorf("Slot %s disappeared from another grade/section", id)
			continue
		}
		if got.TeacherID != slot.TeacherID || got.Grade != slot.Grade ||
			got.Section != slot.Section || got.Day != slot.Day || got.Period != slot.Period {
			t.Errorf("Slot %s was mutated: %+v -> %+v", id, slot, got)
		}
	}
}
