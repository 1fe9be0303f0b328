package repository

import (
	"context"
	"sync"

	domain "school-timetable/internal/domain/timetable"

	"github.com/google/uuid"
)

// In-memory implementations of the timetable repositories for tests and
// local development. All three are safe for concurrent use.

type mockTeacherRepository struct {
	teachers map[uuid.UUID]*domain.Teacher
	mutex    sync.RWMutex
}

// NewMockTeacherRepository creates an empty in-memory teacher repository
func NewMockTeacherRepository() domain.TeacherRepository {
	return &mockTeacherRepository{
		teachers: make(map[uuid.UUID]*domain.Teacher),
	}
}

func (r *mockTeacherRepository) Create(ctx context.Context, teacher *domain.Teacher) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if teacher.TeacherID == uuid.Nil {
		teacher.TeacherID = uuid.New()
	}
	copied := *teacher
	r.teachers[teacher.TeacherID] = &copied
	return nil
}

func (r *mockTeacherRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Teacher, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	teacher, exists := r.teachers[id]
	if !exists {
		return nil, nil
	}
	copied := *teacher
	return &copied, nil
}

func (r *mockTeacherRepository) GetAll(ctx context.Context) ([]*domain.Teacher, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	teachers := make([]*domain.Teacher, 0, len(r.teachers))
	for _, teacher := range r.teachers {
		copied := *teacher
		teachers = append(teachers, &copied)
	}
	return teachers, nil
}

func (r *mockTeacherRepository) Update(ctx context.Context, teacher *domain.Teacher) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	copied := *teacher
	r.teachers[teacher.TeacherID] = &copied
	return nil
}

func (r *mockTeacherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.teachers, id)
	return nil
}

func (r *mockTeacherRepository) Count(ctx context.Context) (int64, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return int64(len(r.teachers)), nil
}

type mockScheduleSlotRepository struct {
	slots map[uuid.UUID]*domain.ScheduleSlot
	mutex sync.RWMutex
}

// NewMockScheduleSlotRepository creates an empty in-memory slot repository
func NewMockScheduleSlotRepository() domain.ScheduleSlotRepository {
	return &mockScheduleSlotRepository{
		slots: make(map[uuid.UUID]*domain.ScheduleSlot),
	}
}

func (r *mockScheduleSlotRepository) Create(ctx context.Context, slot *domain.ScheduleSlot) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if slot.SlotID == uuid.Nil {
		slot.SlotID = uuid.New()
	}
	copied := *slot
	r.slots[slot.SlotID] = &copied
	return nil
}

func (r *mockScheduleSlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ScheduleSlot, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	slot, exists := r.slots[id]
	if !exists {
		return nil, nil
	}
	copied := *slot
	return &copied, nil
}

func (r *mockScheduleSlotRepository) GetAll(ctx context.Context) ([]*domain.ScheduleSlot, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	slots := make([]*domain.ScheduleSlot, 0, len(r.slots))
	for _, slot := range r.slots {
		copied := *slot
		slots = append(slots, &copied)
	}
	return slots, nil
}

func (r *mockScheduleSlotRepository) GetByTeacher(ctx context.Context, teacherID uuid.UUID) ([]*domain.ScheduleSlot, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var slots []*domain.ScheduleSlot
	for _, slot := range r.slots {
		if slot.TeacherID == teacherID {
			copied := *slot
			slots = append(slots, &copied)
		}
	}
	return slots, nil
}

func (r *mockScheduleSlotRepository) GetByGradeSection(ctx context.Context, grade, section int) ([]*domain.ScheduleSlot, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var slots []*domain.ScheduleSlot
	for _, slot := range r.slots {
		if slot.Grade == grade && slot.Section == section {
			copied := *slot
			slots = append(slots, &copied)
		}
	}
	return slots, nil
}

func (r *mockScheduleSlotRepository) Update(ctx context.Context, slot *domain.ScheduleSlot) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	copied := *slot
	r.slots[slot.SlotID] = &copied
	return nil
}

func (r *mockScheduleSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.slots, id)
	return nil
}

func (r *mockScheduleSlotRepository) DeleteByCell(ctx context.Context, grade, section int, cell domain.CellKey) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for id, slot := range r.slots {
		if slot.Grade == grade && slot.Section == section && slot.Cell() == cell {
			delete(r.slots, id)
		}
	}
	return nil
}

type mockGradeSectionRepository struct {
	configs map[int]*domain.GradeSectionConfig
	mutex   sync.RWMutex
}

// NewMockGradeSectionRepository creates an empty in-memory config repository
func NewMockGradeSectionRepository() domain.GradeSectionRepository {
	return &mockGradeSectionRepository{
		configs: make(map[int]*domain.GradeSectionConfig),
	}
}

func (r *mockGradeSectionRepository) Create(ctx context.Context, cfg *domain.GradeSectionConfig) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if cfg.ConfigID == uuid.Nil {
		cfg.ConfigID = uuid.New()
	}
	copied := *cfg
	r.configs[cfg.Grade] = &copied
	return nil
}

func (r *mockGradeSectionRepository) GetByGrade(ctx context.Context, grade int) (*domain.GradeSectionConfig, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	cfg, exists := r.configs[grade]
	if !exists {
		return nil, nil
	}
	copied := *cfg
	return &copied, nil
}

func (r *mockGradeSectionRepository) GetAll(ctx context.Context) ([]*domain.GradeSectionConfig, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	cfgs := make([]*domain.GradeSectionConfig, 0, len(r.configs))
	for _, cfg := range r.configs {
		copied := *cfg
		cfgs = append(cfgs, &copied)
	}
	return cfgs, nil
}

func (r *mockGradeSectionRepository) Update(ctx context.Context, cfg *domain.GradeSectionConfig) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	copied := *cfg
	r.configs[cfg.Grade] = &copied
	return nil
}

func (r *mockGradeSectionRepository) Count(ctx context.Context) (int64, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return int64(len(r.configs)), nil
}
