package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func makeSlot(teacherID uuid.UUID, grade, section int, day Weekday, period int) *ScheduleSlot {
	return &ScheduleSlot{
		SlotID:    uuid.New(),
		TeacherID: teacherID,
		Grade:     grade,
		Section:   section,
		Day:       day,
		Period:    period,
	}
}

func TestDetectConflicts_CrossGradeDoubleBooking(t *testing.T) {
	teacherA := NewTeacher("Amina Yusuf", "Mathematics")

	// Teacher A already holds grade 10/1 Monday period 1
	allSlots := []*ScheduleSlot{
		makeSlot(teacherA.TeacherID, 10, 1, Monday, 1),
	}

	// Propose the same teacher for grade 10/2 at the same cell
	effective := map[CellKey]uuid.UUID{
		{Day: Monday, Period: 1}: teacherA.TeacherID,
	}

	conflicts := DetectConflicts(10, 2, effective, allSlots, []*Teacher{teacherA})
	if len(conflicts) != 1 {
		t.Fatalf("Expected exactly 1 conflict, got %d", len(conflicts))
	}

	conflict := conflicts[0]
	if conflict.Day != Monday || conflict.Period != 1 {
		t.Errorf("Expected conflict at monday/1, got %s/%d", conflict.Day, conflict.Period)
	}
	if len(conflict.Descriptions) != 1 {
		t.Fatalf("Expected 1 description, got %d", len(conflict.Descriptions))
	}
	if !strings.Contains(conflict.Descriptions[0], "Amina Yusuf") {
		t.Errorf("Expected description to name the teacher, got %q", conflict.Descriptions[0])
	}
	if !strings.Contains(conflict.Descriptions[0], "10/1") {
		t.Errorf("Expected description to name the other grade/section, got %q", conflict.Descriptions[0])
	}
}

func TestDetectConflicts_SymmetricView(t *testing.T) {
	teacherA := NewTeacher("Daniel Okello", "Physics")

	// Teacher A persisted in both grade 10/1 and grade 11/3 at the same cell
	allSlots := []*ScheduleSlot{
		makeSlot(teacherA.TeacherID, 10, 1, Wednesday, 4),
		makeSlot(teacherA.TeacherID, 11, 3, Wednesday, 4),
	}
	teachers := []*Teacher{teacherA}

	// Either grade's view must report exactly one conflict entry for the cell
	for _, view := range []struct {
		grade, section int
		other          string
	}{
		{10, 1, "11/3"},
		{11, 3, "10/1"},
	} {
		effective := map[CellKey]uuid.UUID{
			{Day: Wednesday, Period: 4}: teacherA.TeacherID,
		}
		conflicts := DetectConflicts(view.grade, view.section, effective, allSlots, teachers)
		if len(conflicts) != 1 {
			t.Fatalf("View %d/%d: expected 1 conflict, got %d", view.grade, view.section, len(conflicts))
		}
		if !strings.Contains(conflicts[0].Descriptions[0], view.other) {
			t.Errorf("View %d/%d: expected description naming %s, got %q",
				view.grade, view.section, view.other, conflicts[0].Descriptions[0])
		}
	}
}

func TestDetectConflicts_CleanSchedule(t *testing.T) {
	teacherA := NewTeacher("Grace Nambi", "Chemistry")
	teacherB := NewTeacher("Henry Ssemwanga", "Biology")

	// Different teachers at the same cell, same teacher at different cells
	allSlots := []*ScheduleSlot{
		makeSlot(teacherB.TeacherID, 10, 2, Monday, 1),
		makeSlot(teacherA.TeacherID, 11, 1, Monday, 2),
	}

	effective := map[CellKey]uuid.UUID{
		{Day: Monday, Period: 1}: teacherA.TeacherID,
		{Day: Monday, Period: 3}: teacherB.TeacherID,
	}

	conflicts := DetectConflicts(10, 1, effective, allSlots, []*Teacher{teacherA, teacherB})
	if len(conflicts) != 0 {
		t.Fatalf("Expected no conflicts, got %d", len(conflicts))
	}
}

func TestDetectConflicts_SameGradeSectionNotCounted(t *testing.T) {
	teacherA := NewTeacher("Irene Auma", "English")

	// The target's own persisted slot must not conflict with its proposal
	allSlots := []*ScheduleSlot{
		makeSlot(teacherA.TeacherID, 10, 1, Friday, 8),
	}
	effective := map[CellKey]uuid.UUID{
		{Day: Friday, Period: 8}: teacherA.TeacherID,
	}

	conflicts := DetectConflicts(10, 1, effective, allSlots, []*Teacher{teacherA})
	if len(conflicts) != 0 {
		t.Fatalf("Expected no conflicts for the target's own slot, got %d", len(conflicts))
	}
}

func TestDetectConflicts_UnknownTeacherSkipped(t *testing.T) {
	unknownID := uuid.New()

	allSlots := []*ScheduleSlot{
		makeSlot(unknownID, 10, 1, Monday, 1),
	}
	effective := map[CellKey]uuid.UUID{
		{Day: Monday, Period: 1}: unknownID,
	}

	// No roster entry resolves the id; treated as no conflict, not an error
	conflicts := DetectConflicts(10, 2, effective, allSlots, nil)
	if len(conflicts) != 0 {
		t.Fatalf("Expected unknown teacher to be skipped, got %d conflicts", len(conflicts))
	}
}

func TestDetectConflicts_OrderedDayThenPeriod(t *testing.T) {
	teacherA := NewTeacher("Joseph Mugisha", "History")

	allSlots := []*ScheduleSlot{
		makeSlot(teacherA.TeacherID, 11, 1, Tuesday, 5),
		makeSlot(teacherA.TeacherID, 11, 1, Monday, 3),
		makeSlot(teacherA.TeacherID, 11, 1, Monday, 7),
	}
	effective := map[CellKey]uuid.UUID{
		{Day: Tuesday, Period: 5}: teacherA.TeacherID,
		{Day: Monday, Period: 7}:  teacherA.TeacherID,
		{Day: Monday, Period: 3}:  teacherA.TeacherID,
	}

	conflicts := DetectConflicts(10, 1, effective, allSlots, []*Teacher{teacherA})
	if len(conflicts) != 3 {
		t.Fatalf("Expected 3 conflicts, got %d", len(conflicts))
	}

	expected := []CellKey{
		{Day: Monday, Period: 3},
		{Day: Monday, Period: 7},
		{Day: Tuesday, Period: 5},
	}
	for i, want := range expected {
		if conflicts[i].Day != want.Day || conflicts[i].Period != want.Period {
			t.Errorf("Conflict %d: expected %s/%d, got %s/%d",
				i, want.Day, want.Period, conflicts[i].Day, conflicts[i].Period)
		}
	}
}

func TestMergeEffective_OverlayAndClear(t *testing.T) {
	teacherA := uuid.New()
	teacherB := uuid.New()

	persisted := []*ScheduleSlot{
		makeSlot(teacherA, 10, 1, Monday, 1),
		makeSlot(teacherA, 10, 1, Monday, 2),
	}

	changes := []SlotChange{
		{Day: Monday, Period: 1, TeacherID: teacherB.String()},  // override
		{Day: Monday, Period: 2, TeacherID: ""},                 // clear
		{Day: Tuesday, Period: 3, TeacherID: teacherA.String()}, // insert
	}

	effective := MergeEffective(persisted, changes)

	if got := effective[CellKey{Day: Monday, Period: 1}]; got != teacherB {
		t.Errorf("Expected override to teacher B at monday/1, got %s", got)
	}
	if _, exists := effective[CellKey{Day: Monday, Period: 2}]; exists {
		t.Error("Expected monday/2 to be cleared")
	}
	if got := effective[CellKey{Day: Tuesday, Period: 3}]; got != teacherA {
		t.Errorf("Expected insert of teacher A at tuesday/3, got %s", got)
	}
}

func TestMergeEffective_EmptyChangesPreservesPersisted(t *testing.T) {
	teacherA := uuid.New()
	persisted := []*ScheduleSlot{
		makeSlot(teacherA, 12, 7, Thursday, 6),
	}

	effective := MergeEffective(persisted, nil)
	if len(effective) != 1 {
		t.Fatalf("Expected 1 effective cell, got %d", len(effective))
	}
	if got := effective[CellKey{Day: Thursday, Period: 6}]; got != teacherA {
		t.Errorf("Expected teacher A at thursday/6, got %s", got)
	}
}
