package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// MergeEffective resolves the effective schedule of one grade/section:
// persisted slots overlaid with staged changes. A change with an empty
// teacher id clears its cell. Pure; neither input is mutated.
func MergeEffective(persisted []*ScheduleSlot, changes []SlotChange) map[CellKey]uuid.UUID {
	effective := make(map[CellKey]uuid.UUID, len(persisted))
	for _, slot := range persisted {
		effective[slot.Cell()] = slot.TeacherID
	}
	for _, change := range changes {
		cell := CellKey{Day: change.Day, Period: change.Period}
		if change.TeacherID == "" {
			delete(effective, cell)
			continue
		}
		id, err := uuid.Parse(change.TeacherID)
		if err != nil {
			// Unparseable ids cannot collide with anything; drop the cell
			delete(effective, cell)
			continue
		}
		effective[cell] = id
	}
	return effective
}

// DetectConflicts scans the full slot set for teachers double-booked at
// the same day and period across different grade/sections. effective is
// the merged schedule of the target grade/section; slots belonging to
// the target itself are never counted against it. Teacher ids missing
// from the roster are skipped. Pure; output order is day-then-period.
func DetectConflicts(targetGrade, targetSection int, effective map[CellKey]uuid.UUID, allSlots []*ScheduleSlot, teachers []*Teacher) []Conflict {
	roster := make(map[uuid.UUID]*Teacher, len(teachers))
	for _, t := range teachers {
		roster[t.TeacherID] = t
	}

	var conflicts []Conflict
	for _, day := range Weekdays() {
		for _, period := range Periods() {
			cell := CellKey{Day: day, Period: period}
			teacherID, occupied := effective[cell]
			if !occupied {
				continue
			}
			teacher, known := roster[teacherID]
			if !known {
				continue
			}

			var descriptions []string
			for _, slot := range allSlots {
				if slot.TeacherID != teacherID || slot.Day != day || slot.Period != period {
					continue
				}
				if slot.Grade == targetGrade && slot.Section == targetSection {
					continue
				}
				descriptions = append(descriptions,
					fmt.Sprintf("%s (%s) is already assigned to grade %d/%d",
						teacher.Name, teacher.Subject, slot.Grade, slot.Section))
			}
			if len(descriptions) > 0 {
				conflicts = append(conflicts, Conflict{
					Day:          day,
					Period:       period,
					Descriptions: descriptions,
				})
			}
		}
	}
	return conflicts
}
