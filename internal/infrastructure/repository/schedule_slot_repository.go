package repository

import (
	"context"

	domain "school-timetable/internal/domain/timetable"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleSlotRepository implements domain.ScheduleSlotRepository using GORM
type ScheduleSlotRepository struct {
	db *gorm.DB
}

// NewScheduleSlotRepository creates a new GORM schedule slot repository
func NewScheduleSlotRepository(db *gorm.DB) domain.ScheduleSlotRepository {
	return &ScheduleSlotRepository{
		db: db,
	}
}

// Create creates a new schedule slot
func (r *ScheduleSlotRepository) Create(ctx context.Context, slot *domain.ScheduleSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

// GetByID retrieves a slot by ID
func (r *ScheduleSlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ScheduleSlot, error) {
	var slot domain.ScheduleSlot
	err := r.db.WithContext(ctx).First(&slot, "slot_id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

// GetAll retrieves every persisted slot across all grade/sections
func (r *ScheduleSlotRepository) GetAll(ctx context.Context) ([]*domain.ScheduleSlot, error) {
	var slots []*domain.ScheduleSlot
	err := r.db.WithContext(ctx).Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// GetByTeacher retrieves all slots assigned to one teacher
func (r *ScheduleSlotRepository) GetByTeacher(ctx context.Context, teacherID uuid.UUID) ([]*domain.ScheduleSlot, error) {
	var slots []*domain.ScheduleSlot
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// GetByGradeSection retrieves the slots of one grade/section only
func (r *ScheduleSlotRepository) GetByGradeSection(ctx context.Context, grade, section int) ([]*domain.ScheduleSlot, error) {
	var slots []*domain.ScheduleSlot
	err := r.db.WithContext(ctx).
		Where("grade = ? AND section = ?", grade, section).
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// Update persists changed slot fields
func (r *ScheduleSlotRepository) Update(ctx context.Context, slot *domain.ScheduleSlot) error {
	return r.db.WithContext(ctx).Model(slot).
		Where("slot_id = ?", slot.SlotID).
		Updates(map[string]interface{}{
			"teacher_id": slot.TeacherID,
			"day":        slot.Day,
			"period":     slot.Period,
			"updated_at": slot.UpdatedAt,
		}).Error
}

// Delete removes a slot by ID
func (r *ScheduleSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ScheduleSlot{}, "slot_id = ?", id).Error
}

// DeleteByCell removes whatever slot occupies one cell of one
// grade/section. Rows of other grade/sections are never touched.
func (r *ScheduleSlotRepository) DeleteByCell(ctx context.Context, grade, section int, cell domain.CellKey) error {
	return r.db.WithContext(ctx).
		Where("grade = ? AND section = ? AND day = ? AND period = ?",
			grade, section, cell.Day, cell.Period).
		Delete(&domain.ScheduleSlot{}).Error
}
