package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"school-timetable/pkg/logger"

	"github.com/google/uuid"
)

// CacheSyncJob asks the workers to refresh cached views touched by a
// schedule save: the grade/section slot set and each affected teacher's
// timetable view.
type CacheSyncJob struct {
	Grade      int
	Section    int
	TeacherIDs []uuid.UUID
	EnqueuedAt time.Time
}

// CacheSyncer executes a cache-sync job
type CacheSyncer interface {
	SyncCaches(ctx context.Context, job CacheSyncJob) error
}

// Queue runs cache-sync jobs on a fixed pool of workers
type Queue struct {
	jobs    chan CacheSyncJob
	workers int

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
	mu      sync.RWMutex

	syncer CacheSyncer
}

// NewInMemoryQueue creates a queue with the given buffer and worker count
func NewInMemoryQueue(bufferSize, workers int) *Queue {
	ctx, cancel := context.WithCancel(context.Background())

	return &Queue{
		jobs:    make(chan CacheSyncJob, bufferSize),
		workers: workers,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// SetSyncer wires the job executor; must be called before Start
func (q *Queue) SetSyncer(syncer CacheSyncer) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.syncer = syncer
}

// Start launches the worker pool
func (q *Queue) Start() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.started {
		return fmt.Errorf("queue already started")
	}
	if q.syncer == nil {
		return fmt.Errorf("queue has no syncer configured")
	}

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
	q.started = true
	logger.Info("Cache sync queue started with %d workers", q.workers)
	return nil
}

// Stop cancels the workers and waits for them to drain
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return
	}
	q.started = false
	q.mu.Unlock()

	q.cancel()
	q.wg.Wait()
	logger.Info("Cache sync queue stopped")
}

// Enqueue submits a job without blocking; a full buffer drops the job,
// which only delays a cache refresh until the next read-through.
func (q *Queue) Enqueue(job CacheSyncJob) {
	job.EnqueuedAt = time.Now()
	select {
	case q.jobs <- job:
	default:
		logger.Warn("Cache sync queue full, dropping job for grade %d/%d", job.Grade, job.Section)
	}
}

func (q *Queue) worker(id int) {
	defer q.wg.Done()

	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			q.mu.RLock()
			syncer := q.syncer
			q.mu.RUnlock()

			if err := syncer.SyncCaches(q.ctx, job); err != nil {
				logger.Error("Cache sync worker %d failed for grade %d/%d: %v",
					id, job.Grade, job.Section, err)
			}
		}
	}
}
