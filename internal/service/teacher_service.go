package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "school-timetable/internal/domain/timetable"
	"school-timetable/internal/infrastructure/cache"
	"school-timetable/pkg/logger"

	"github.com/google/uuid"
)

// TeacherService manages the teacher roster
type TeacherService struct {
	teacherRepo domain.TeacherRepository
	slotRepo    domain.ScheduleSlotRepository
	slotCache   SlotCache
}

// NewTeacherService creates a new teacher service; slotCache may be nil
func NewTeacherService(teacherRepo domain.TeacherRepository, slotRepo domain.ScheduleSlotRepository, slotCache SlotCache) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		slotRepo:    slotRepo,
		slotCache:   slotCache,
	}
}

// CreateTeacher adds a teacher to the roster
func (s *TeacherService) CreateTeacher(ctx context.Context, req *domain.CreateTeacherRequest) (*domain.Teacher, error) {
	logger.Info("Creating teacher %s (%s)", req.Name, req.Subject)

	teacher := domain.NewTeacher(req.Name, req.Subject)
	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		logger.Error("Failed to create teacher: %v", err)
		return nil, fmt.Errorf("failed to create teacher: %w", err)
	}
	return teacher, nil
}

// GetTeacher retrieves a teacher by ID
func (s *TeacherService) GetTeacher(ctx context.Context, id uuid.UUID) (*domain.Teacher, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	if teacher == nil {
		return nil, errors.New("teacher not found")
	}
	return teacher, nil
}

// ListTeachers returns the full roster
func (s *TeacherService) ListTeachers(ctx context.Context) ([]*domain.Teacher, error) {
	teachers, err := s.teacherRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	return teachers, nil
}

// UpdateTeacher applies a partial update to a teacher
func (s *TeacherService) UpdateTeacher(ctx context.Context, id uuid.UUID, req *domain.UpdateTeacherRequest) (*domain.Teacher, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	if teacher == nil {
		return nil, errors.New("teacher not found")
	}

	if req.Name != nil {
		teacher.Name = *req.Name
	}
	if req.Subject != nil {
		teacher.Subject = *req.Subject
	}
	teacher.UpdatedAt = time.Now()

	if err := s.teacherRepo.Update(ctx, teacher); err != nil {
		logger.Error("Failed to update teacher %s: %v", id, err)
		return nil, fmt.Errorf("failed to update teacher: %w", err)
	}
	return teacher, nil
}

// DeleteTeacher removes a teacher from the roster. Slots referencing the
// teacher are left as dangling references and render as empty cells.
func (s *TeacherService) DeleteTeacher(ctx context.Context, id uuid.UUID) error {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get teacher: %w", err)
	}
	if teacher == nil {
		return errors.New("teacher not found")
	}

	if err := s.teacherRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete teacher %s: %v", id, err)
		return fmt.Errorf("failed to delete teacher: %w", err)
	}

	if s.slotCache != nil {
		if err := s.slotCache.InvalidateTeacherSlots(ctx, id); err != nil {
			logger.Debug("Failed to invalidate teacher slot cache: %v", err)
		}
	}

	logger.Info("Deleted teacher %s (%s)", teacher.Name, teacher.Subject)
	return nil
}

// GetTeacherSchedule returns all slots assigned to one teacher, read
// through the cache when available
func (s *TeacherService) GetTeacherSchedule(ctx context.Context, id uuid.UUID) ([]*domain.ScheduleSlot, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	if teacher == nil {
		return nil, errors.New("teacher not found")
	}

	if s.slotCache != nil {
		slots, err := s.slotCache.GetTeacherSlots(ctx, id)
		if err == nil {
			return slots, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Debug("Teacher slot cache read failed, falling back to store: %v", err)
		}
	}

	slots, err := s.slotRepo.GetByTeacher(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load slots for teacher %s: %w", id, err)
	}

	if s.slotCache != nil {
		if err := s.slotCache.SetTeacherSlots(ctx, id, slots, cache.TeacherSlotsTTL); err != nil {
			logger.Debug("Failed to cache teacher slots: %v", err)
		}
	}
	return slots, nil
}
