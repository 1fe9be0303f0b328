package service

import (
	"context"
	"time"

	domain "school-timetable/internal/domain/timetable"
	"school-timetable/internal/infrastructure/queue"

	"github.com/google/uuid"
)

// SlotCache is the cache surface the services depend on; satisfied by
// cache.RedisCache. A nil SlotCache disables caching entirely.
type SlotCache interface {
	GetGradeSectionSlots(ctx context.Context, grade, section int) ([]*domain.ScheduleSlot, error)
	SetGradeSectionSlots(ctx context.Context, grade, section int, slots []*domain.ScheduleSlot, ttl time.Duration) error
	InvalidateGradeSectionSlots(ctx context.Context, grade, section int) error

	GetTeacherSlots(ctx context.Context, teacherID uuid.UUID) ([]*domain.ScheduleSlot, error)
	SetTeacherSlots(ctx context.Context, teacherID uuid.UUID, slots []*domain.ScheduleSlot, ttl time.Duration) error
	InvalidateTeacherSlots(ctx context.Context, teacherID uuid.UUID) error

	GetGradeSections(ctx context.Context) (map[int][]int, error)
	SetGradeSections(ctx context.Context, sections map[int][]int, ttl time.Duration) error
	InvalidateGradeSections(ctx context.Context) error
}

// SyncEnqueuer submits cache-sync jobs; satisfied by queue.Queue. A nil
// SyncEnqueuer skips async refresh.
type SyncEnqueuer interface {
	Enqueue(job queue.CacheSyncJob)
}
