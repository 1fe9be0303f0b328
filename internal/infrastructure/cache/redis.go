package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"school-timetable/internal/config"
	domain "school-timetable/internal/domain/timetable"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	GradeSectionSlotsTTL = 15 * time.Minute
	TeacherSlotsTTL      = 15 * time.Minute
	GradeSectionsTTL     = 2 * time.Hour
	IdempotencyTTL       = 24 * time.Hour
)

// ErrCacheMiss is returned when a key is not cached
var ErrCacheMiss = fmt.Errorf("cache miss")

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr, password string, db int) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisCache{
		client: rdb,
	}
}

func NewRedisCacheWithConfig(cfg *config.CacheConfig) *RedisCache {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	return NewRedisCache(addr, cfg.Password, cfg.DB)
}

func (r *RedisCache) GetClient() *redis.Client {
	return r.client
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func gradeSectionSlotsKey(grade, section int) string {
	return fmt.Sprintf("timetable:slots:grade:%d:section:%d", grade, section)
}

func teacherSlotsKey(teacherID uuid.UUID) string {
	return fmt.Sprintf("timetable:slots:teacher:%s", teacherID.String())
}

const gradeSectionsKey = "timetable:grade-sections"

func idempotencyKey(key string) string {
	return fmt.Sprintf("timetable:idempotency:%s", key)
}

// GetGradeSectionSlots returns the cached slot set of one grade/section
func (r *RedisCache) GetGradeSectionSlots(ctx context.Context, grade, section int) ([]*domain.ScheduleSlot, error) {
	val, err := r.client.Get(ctx, gradeSectionSlotsKey(grade, section)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get grade/section slots from cache: %w", err)
	}

	var slots []*domain.ScheduleSlot
	if err := json.Unmarshal([]byte(val), &slots); err != nil {
		return nil, fmt.Errorf("invalid cached slots for grade %d/%d: %w", grade, section, err)
	}
	return slots, nil
}

// SetGradeSectionSlots caches the slot set of one grade/section
func (r *RedisCache) SetGradeSectionSlots(ctx context.Context, grade, section int, slots []*domain.ScheduleSlot, ttl time.Duration) error {
	payload, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("failed to encode slots: %w", err)
	}
	if err := r.client.Set(ctx, gradeSectionSlotsKey(grade, section), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set grade/section slots in cache: %w", err)
	}
	return nil
}

// InvalidateGradeSectionSlots drops the cached slot set of one grade/section
func (r *RedisCache) InvalidateGradeSectionSlots(ctx context.Context, grade, section int) error {
	return r.client.Del(ctx, gradeSectionSlotsKey(grade, section)).Err()
}

// GetTeacherSlots returns the cached timetable view of one teacher
func (r *RedisCache) GetTeacherSlots(ctx context.Context, teacherID uuid.UUID) ([]*domain.ScheduleSlot, error) {
	val, err := r.client.Get(ctx, teacherSlotsKey(teacherID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get teacher slots from cache: %w", err)
	}

	var slots []*domain.ScheduleSlot
	if err := json.Unmarshal([]byte(val), &slots); err != nil {
		return nil, fmt.Errorf("invalid cached slots for teacher %s: %w", teacherID, err)
	}
	return slots, nil
}

// SetTeacherSlots caches the timetable view of one teacher
func (r *RedisCache) SetTeacherSlots(ctx context.Context, teacherID uuid.UUID, slots []*domain.ScheduleSlot, ttl time.Duration) error {
	payload, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("failed to encode slots: %w", err)
	}
	if err := r.client.Set(ctx, teacherSlotsKey(teacherID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set teacher slots in cache: %w", err)
	}
	return nil
}

// InvalidateTeacherSlots drops the cached timetable view of one teacher
func (r *RedisCache) InvalidateTeacherSlots(ctx context.Context, teacherID uuid.UUID) error {
	return r.client.Del(ctx, teacherSlotsKey(teacherID)).Err()
}

// GetGradeSections returns the cached grade -> section numbers map
func (r *RedisCache) GetGradeSections(ctx context.Context) (map[int][]int, error) {
	val, err := r.client.Get(ctx, gradeSectionsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get grade sections from cache: %w", err)
	}

	var sections map[int][]int
	if err := json.Unmarshal([]byte(val), &sections); err != nil {
		return nil, fmt.Errorf("invalid cached grade sections: %w", err)
	}
	return sections, nil
}

// SetGradeSections caches the grade -> section numbers map
func (r *RedisCache) SetGradeSections(ctx context.Context, sections map[int][]int, ttl time.Duration) error {
	payload, err := json.Marshal(sections)
	if err != nil {
		return fmt.Errorf("failed to encode grade sections: %w", err)
	}
	if err := r.client.Set(ctx, gradeSectionsKey, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set grade sections in cache: %w", err)
	}
	return nil
}

// InvalidateGradeSections drops the cached grade -> section numbers map
func (r *RedisCache) InvalidateGradeSections(ctx context.Context) error {
	return r.client.Del(ctx, gradeSectionsKey).Err()
}

// GetIdempotentResponse returns the stored response for a request key
func (r *RedisCache) GetIdempotentResponse(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, idempotencyKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get idempotency record: %w", err)
	}
	return val, nil
}

// StoreIdempotentResponse stores the response payload for a request key
func (r *RedisCache) StoreIdempotentResponse(ctx context.Context, key string, payload []byte) error {
	if err := r.client.Set(ctx, idempotencyKey(key), payload, IdempotencyTTL).Err(); err != nil {
		return fmt.Errorf("failed to store idempotency record: %w", err)
	}
	return nil
}
