package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "school-timetable/internal/domain/timetable"
	"school-timetable/internal/infrastructure/cache"
	"school-timetable/internal/infrastructure/queue"
	"school-timetable/pkg/logger"

	"github.com/google/uuid"
)

var _ queue.CacheSyncer = (*ScheduleService)(nil)

// ScheduleService implements the conflict-detection and partial-update
// protocol for grade/section weekly schedules, plus plain slot CRUD.
type ScheduleService struct {
	slotRepo    domain.ScheduleSlotRepository
	teacherRepo domain.TeacherRepository
	slotCache   SlotCache
	syncQueue   SyncEnqueuer
}

// NewScheduleService creates a new schedule service. slotCache and
// syncQueue may be nil to run uncached.
func NewScheduleService(
	slotRepo domain.ScheduleSlotRepository,
	teacherRepo domain.TeacherRepository,
	slotCache SlotCache,
	syncQueue SyncEnqueuer,
) *ScheduleService {
	return &ScheduleService{
		slotRepo:    slotRepo,
		teacherRepo: teacherRepo,
		slotCache:   slotCache,
		syncQueue:   syncQueue,
	}
}

// GetGradeSectionSchedule returns the persisted slots of one grade/section,
// read through the cache when available.
func (s *ScheduleService) GetGradeSectionSchedule(ctx context.Context, grade, section int) ([]*domain.ScheduleSlot, error) {
	if s.slotCache != nil {
		slots, err := s.slotCache.GetGradeSectionSlots(ctx, grade, section)
		if err == nil {
			return slots, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Debug("Grade/section slot cache read failed, falling back to store: %v", err)
		}
	}

	slots, err := s.slotRepo.GetByGradeSection(ctx, grade, section)
	if err != nil {
		return nil, fmt.Errorf("failed to load slots for grade %d/%d: %w", grade, section, err)
	}

	if s.slotCache != nil {
		if err := s.slotCache.SetGradeSectionSlots(ctx, grade, section, slots, cache.GradeSectionSlotsTTL); err != nil {
			logger.Debug("Failed to cache grade/section slots: %v", err)
		}
	}
	return slots, nil
}

// CheckConflicts merges the staged changes over the persisted schedule of
// the target grade/section and scans the full slot set for teachers
// double-booked across different grade/sections.
func (s *ScheduleService) CheckConflicts(ctx context.Context, grade, section int, changes []domain.SlotChange) ([]domain.Conflict, error) {
	persisted, err := s.slotRepo.GetByGradeSection(ctx, grade, section)
	if err != nil {
		return nil, fmt.Errorf("failed to load slots for grade %d/%d: %w", grade, section, err)
	}

	allSlots, err := s.slotRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load slots: %w", err)
	}

	teachers, err := s.teacherRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load teacher roster: %w", err)
	}

	effective := domain.MergeEffective(persisted, changes)
	return domain.DetectConflicts(grade, section, effective, allSlots, teachers), nil
}

// ApplyPartialUpdate merges the staged changes into the persisted schedule
// of one grade/section. The save is all-or-nothing with respect to
// conflicts: any double-booking blocks every cell. Only the target
// grade/section's rows are read for writing or mutated.
func (s *ScheduleService) ApplyPartialUpdate(ctx context.Context, grade, section int, changes []domain.SlotChange) (*domain.PartialUpdateResult, error) {
	if len(changes) == 0 {
		slots, err := s.GetGradeSectionSchedule(ctx, grade, section)
		if err != nil {
			return nil, err
		}
		return &domain.PartialUpdateResult{NoChanges: true, Slots: slots}, nil
	}

	for _, change := range changes {
		if !change.Day.IsValid() {
			return nil, fmt.Errorf("invalid day %q", change.Day)
		}
		if change.Period < domain.FirstPeriod || change.Period > domain.LastPeriod {
			return nil, fmt.Errorf("invalid period %d", change.Period)
		}
	}

	// The caller is expected to have run the conflict check already; this
	// one is defense in depth against stale clients.
	conflicts, err := s.CheckConflicts(ctx, grade, section, changes)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &domain.ConflictError{Conflicts: conflicts}
	}

	persisted, err := s.slotRepo.GetByGradeSection(ctx, grade, section)
	if err != nil {
		return nil, fmt.Errorf("failed to load slots for grade %d/%d: %w", grade, section, err)
	}

	byCell := make(map[domain.CellKey]*domain.ScheduleSlot, len(persisted))
	for _, slot := range persisted {
		byCell[slot.Cell()] = slot
	}

	touchedTeachers := make(map[uuid.UUID]struct{})

	for _, change := range changes {
		cell := domain.CellKey{Day: change.Day, Period: change.Period}
		existing := byCell[cell]

		if change.TeacherID == "" {
			if existing == nil {
				continue
			}
			if err := s.slotRepo.DeleteByCell(ctx, grade, section, cell); err != nil {
				return nil, fmt.Errorf("failed to clear cell %s/%d: %w", cell.Day, cell.Period, err)
			}
			touchedTeachers[existing.TeacherID] = struct{}{}
			delete(byCell, cell)
			continue
		}

		teacherID, err := uuid.Parse(change.TeacherID)
		if err != nil {
			return nil, fmt.Errorf("invalid teacher id %q: %w", change.TeacherID, err)
		}
		touchedTeachers[teacherID] = struct{}{}

		if existing != nil {
			if existing.TeacherID == teacherID {
				continue
			}
			touchedTeachers[existing.TeacherID] = struct{}{}
			existing.TeacherID = teacherID
			existing.UpdatedAt = time.Now()
			if err := s.slotRepo.Update(ctx, existing); err != nil {
				return nil, fmt.Errorf("failed to update cell %s/%d: %w", cell.Day, cell.Period, err)
			}
			continue
		}

		slot := &domain.ScheduleSlot{
			SlotID:    uuid.New(),
			TeacherID: teacherID,
			Grade:     grade,
			Section:   section,
			Day:       change.Day,
			Period:    change.Period,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := s.slotRepo.Create(ctx, slot); err != nil {
			return nil, fmt.Errorf("failed to create slot at %s/%d: %w", cell.Day, cell.Period, err)
		}
		byCell[cell] = slot
	}

	s.invalidateAfterSave(ctx, grade, section, touchedTeachers)

	updated, err := s.slotRepo.GetByGradeSection(ctx, grade, section)
	if err != nil {
		return nil, fmt.Errorf("failed to reload slots for grade %d/%d: %w", grade, section, err)
	}

	logger.Info("Applied partial schedule update for grade %d/%d: %d changed cell(s)",
		grade, section, len(changes))
	return &domain.PartialUpdateResult{Slots: updated}, nil
}

func (s *ScheduleService) invalidateAfterSave(ctx context.Context, grade, section int, teachers map[uuid.UUID]struct{}) {
	teacherIDs := make([]uuid.UUID, 0, len(teachers))
	for id := range teachers {
		teacherIDs = append(teacherIDs, id)
	}

	if s.slotCache != nil {
		if err := s.slotCache.InvalidateGradeSectionSlots(ctx, grade, section); err != nil {
			logger.Debug("Failed to invalidate grade/section slot cache: %v", err)
		}
		for _, id := range teacherIDs {
			if err := s.slotCache.InvalidateTeacherSlots(ctx, id); err != nil {
				logger.Debug("Failed to invalidate teacher slot cache: %v", err)
			}
		}
	}

	if s.syncQueue != nil {
		s.syncQueue.Enqueue(queue.CacheSyncJob{
			Grade:      grade,
			Section:    section,
			TeacherIDs: teacherIDs,
		})
	}
}

// SyncCaches re-warms the cached views touched by a schedule save
func (s *ScheduleService) SyncCaches(ctx context.Context, job queue.CacheSyncJob) error {
	if s.slotCache == nil {
		return nil
	}

	slots, err := s.slotRepo.GetByGradeSection(ctx, job.Grade, job.Section)
	if err != nil {
		return fmt.Errorf("failed to reload slots for grade %d/%d: %w", job.Grade, job.Section, err)
	}
	if err := s.slotCache.SetGradeSectionSlots(ctx, job.Grade, job.Section, slots, cache.GradeSectionSlotsTTL); err != nil {
		return err
	}

	for _, teacherID := range job.TeacherIDs {
		teacherSlots, err := s.slotRepo.GetByTeacher(ctx, teacherID)
		if err != nil {
			return fmt.Errorf("failed to reload slots for teacher %s: %w", teacherID, err)
		}
		if err := s.slotCache.SetTeacherSlots(ctx, teacherID, teacherSlots, cache.TeacherSlotsTTL); err != nil {
			return err
		}
	}
	return nil
}

// ListSlots returns all slots, optionally filtered to one teacher
func (s *ScheduleService) ListSlots(ctx context.Context, teacherID *uuid.UUID) ([]*domain.ScheduleSlot, error) {
	if teacherID != nil {
		slots, err := s.slotRepo.GetByTeacher(ctx, *teacherID)
		if err != nil {
			return nil, fmt.Errorf("failed to load slots for teacher %s: %w", *teacherID, err)
		}
		return slots, nil
	}

	slots, err := s.slotRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load slots: %w", err)
	}
	return slots, nil
}

// CreateSlot persists a single slot outside the partial-update flow
func (s *ScheduleService) CreateSlot(ctx context.Context, req *domain.CreateSlotRequest) (*domain.ScheduleSlot, error) {
	if !req.Day.IsValid() {
		return nil, fmt.Errorf("invalid day %q", req.Day)
	}

	slot := &domain.ScheduleSlot{
		SlotID:    uuid.New(),
		TeacherID: req.TeacherID,
		Grade:     req.Grade,
		Section:   req.Section,
		Day:       req.Day,
		Period:    req.Period,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}

	s.invalidateAfterSave(ctx, slot.Grade, slot.Section, map[uuid.UUID]struct{}{slot.TeacherID: {}})
	return slot, nil
}

// UpdateSlot applies a partial field update to one slot
func (s *ScheduleService) UpdateSlot(ctx context.Context, id uuid.UUID, req *domain.UpdateSlotRequest) (*domain.ScheduleSlot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	if slot == nil {
		return nil, errors.New("slot not found")
	}

	previousTeacher := slot.TeacherID
	if req.TeacherID != nil {
		slot.TeacherID = *req.TeacherID
	}
	if req.Day != nil {
		if !req.Day.IsValid() {
			return nil, fmt.Errorf("invalid day %q", *req.Day)
		}
		slot.Day = *req.Day
	}
	if req.Period != nil {
		slot.Period = *req.Period
	}
	slot.UpdatedAt = time.Now()

	if err := s.slotRepo.Update(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to update slot: %w", err)
	}

	s.invalidateAfterSave(ctx, slot.Grade, slot.Section, map[uuid.UUID]struct{}{
		previousTeacher: {},
		slot.TeacherID:  {},
	})
	return slot, nil
}

// DeleteSlot removes one slot by ID
func (s *ScheduleService) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get slot: %w", err)
	}
	if slot == nil {
		return errors.New("slot not found")
	}

	if err := s.slotRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}

	s.invalidateAfterSave(ctx, slot.Grade, slot.Section, map[uuid.UUID]struct{}{slot.TeacherID: {}})
	return nil
}
