package router

import (
	"school-timetable/internal/api/handlers"
	"school-timetable/internal/api/middleware"
	"school-timetable/internal/config"
	"school-timetable/internal/infrastructure/cache"
	"school-timetable/internal/infrastructure/queue"
	"school-timetable/internal/infrastructure/repository"
	"school-timetable/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RouterComponents bundles the engine with the background components the
// caller must start and stop
type RouterComponents struct {
	Router    *gin.Engine
	SyncQueue *queue.Queue
	Cache     *cache.RedisCache
}

// NewTimetableRouter wires repositories, services and handlers onto a
// gin engine
func NewTimetableRouter(db *gorm.DB) *RouterComponents {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(cors.Default())
	r.Use(gin.Recovery())

	cfg := config.Get()

	teacherRepo := repository.NewTeacherRepository(db)
	slotRepo := repository.NewScheduleSlotRepository(db)
	gradeSectionRepo := repository.NewGradeSectionRepository(db)

	var slotCache *cache.RedisCache
	if cfg.Cache.Enabled {
		slotCache = cache.NewRedisCacheWithConfig(&cfg.Cache)
	}

	syncQueue := queue.NewInMemoryQueue(cfg.Timetable.SyncQueueSize, cfg.Timetable.SyncQueueWorkers)

	// Interface-typed nils must stay nil, not wrap a nil pointer
	var cacheDep service.SlotCache
	if slotCache != nil {
		cacheDep = slotCache
	}

	scheduleService := service.NewScheduleService(slotRepo, teacherRepo, cacheDep, syncQueue)
	teacherService := service.NewTeacherService(teacherRepo, slotRepo, cacheDep)
	gradeSectionService := service.NewGradeSectionService(gradeSectionRepo, cacheDep)

	syncQueue.SetSyncer(scheduleService)

	var idempotencyStore handlers.IdempotencyStore
	if slotCache != nil {
		idempotencyStore = slotCache
	}

	teacherHandler := handlers.NewTeacherHandler(teacherService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, idempotencyStore)
	gradeSectionHandler := handlers.NewGradeSectionHandler(gradeSectionService)
	healthHandler := handlers.NewHealthHandler(db, slotCache)

	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/ready", healthHandler.ReadinessCheck)
	r.GET("/live", healthHandler.LivenessCheck)

	v1 := r.Group("/api/v1")
	{
		teachers := v1.Group("/teachers")
		{
			teachers.POST("", teacherHandler.CreateTeacher)
			teachers.GET("", teacherHandler.ListTeachers)
			teachers.GET("/:id", teacherHandler.GetTeacher)
			teachers.PATCH("/:id", teacherHandler.UpdateTeacher)
			teachers.DELETE("/:id", teacherHandler.DeleteTeacher)
			teachers.GET("/:id/schedule", teacherHandler.GetTeacherSchedule)
		}

		slots := v1.Group("/schedule-slots")
		{
			slots.GET("", scheduleHandler.ListSlots)
			slots.POST("", scheduleHandler.CreateSlot)
			slots.PATCH("/:id", scheduleHandler.UpdateSlot)
			slots.DELETE("/:id", scheduleHandler.DeleteSlot)
		}

		classSchedules := v1.Group("/class-schedules")
		classSchedules.Use(middleware.Idempotency())
		{
			classSchedules.GET("/:grade/:section", scheduleHandler.GetClassSchedule)
			classSchedules.PATCH("/:grade/:section", scheduleHandler.PatchClassSchedule)
		}

		gradeSections := v1.Group("/grade-sections")
		{
			gradeSections.GET("", gradeSectionHandler.GetAll)
			gradeSections.GET("/:grade", gradeSectionHandler.GetByGrade)
			gradeSections.PUT("/:grade", gradeSectionHandler.UpdateByGrade)
		}
	}

	return &RouterComponents{
		Router:    r,
		SyncQueue: syncQueue,
		Cache:     slotCache,
	}
}
