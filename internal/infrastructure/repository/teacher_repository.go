package repository

import (
	"context"

	domain "school-timetable/internal/domain/timetable"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeacherRepository implements domain.TeacherRepository using GORM
type TeacherRepository struct {
	db *gorm.DB
}

// NewTeacherRepository creates a new GORM teacher repository
func NewTeacherRepository(db *gorm.DB) domain.TeacherRepository {
	return &TeacherRepository{
		db: db,
	}
}

// Create creates a new teacher
func (r *TeacherRepository) Create(ctx context.Context, teacher *domain.Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}

// GetByID retrieves a teacher by ID
func (r *TeacherRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Teacher, error) {
	var teacher domain.Teacher
	err := r.db.WithContext(ctx).First(&teacher, "teacher_id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &teacher, nil
}

// GetAll retrieves the full roster ordered by name
func (r *TeacherRepository) GetAll(ctx context.Context) ([]*domain.Teacher, error) {
	var teachers []*domain.Teacher
	err := r.db.WithContext(ctx).Order("name").Find(&teachers).Error
	if err != nil {
		return nil, err
	}
	return teachers, nil
}

// Update persists changed teacher fields
func (r *TeacherRepository) Update(ctx context.Context, teacher *domain.Teacher) error {
	return r.db.WithContext(ctx).Model(teacher).
		Where("teacher_id = ?", teacher.TeacherID).
		Updates(map[string]interface{}{
			"name":       teacher.Name,
			"subject":    teacher.Subject,
			"updated_at": teacher.UpdatedAt,
		}).Error
}

// Delete removes a teacher. Slots referencing it are left in place;
// dangling references render as empty cells.
func (r *TeacherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Teacher{}, "teacher_id = ?", id).Error
}

// Count returns the number of teachers in the roster
func (r *TeacherRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Teacher{}).Count(&count).Error
	return count, err
}
