package domain

import (
	"context"

	"github.com/google/uuid"
)

// TeacherRepository defines the interface for teacher data access
type TeacherRepository interface {
	Create(ctx context.Context, teacher *Teacher) error
	GetByID(ctx context.Context, id uuid.UUID) (*Teacher, error)
	GetAll(ctx context.Context) ([]*Teacher, error)
	Update(ctx context.Context, teacher *Teacher) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// ScheduleSlotRepository defines the interface for schedule slot data access
type ScheduleSlotRepository interface {
	Create(ctx context.Context, slot *ScheduleSlot) error
	GetByID(ctx context.Context, id uuid.UUID) (*ScheduleSlot, error)
	GetAll(ctx context.Context) ([]*ScheduleSlot, error)
	GetByTeacher(ctx context.Context, teacherID uuid.UUID) ([]*ScheduleSlot, error)
	GetByGradeSection(ctx context.Context, grade, section int) ([]*ScheduleSlot, error)
	Update(ctx context.Context, slot *ScheduleSlot) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCell(ctx context.Context, grade, section int, cell CellKey) error
}

// GradeSectionRepository defines the interface for grade-section config data access
type GradeSectionRepository interface {
	Create(ctx context.Context, cfg *GradeSectionConfig) error
	GetByGrade(ctx context.Context, grade int) (*GradeSectionConfig, error)
	GetAll(ctx context.Context) ([]*GradeSectionConfig, error)
	Update(ctx context.Context, cfg *GradeSectionConfig) error
	Count(ctx context.Context) (int64, error)
}
