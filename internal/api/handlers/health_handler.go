package handlers

import (
	"net/http"
	"time"

	"school-timetable/internal/config"
	"school-timetable/internal/infrastructure/cache"
	"school-timetable/internal/infrastructure/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db        *gorm.DB
	slotCache *cache.RedisCache
}

// NewHealthHandler creates a new health handler; db and slotCache may be
// nil when the corresponding backend is not configured
func NewHealthHandler(db *gorm.DB, slotCache *cache.RedisCache) *HealthHandler {
	return &HealthHandler{
		db:        db,
		slotCache: slotCache,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	cfg := config.Get()

	status := "healthy"
	services := make(map[string]string)

	if h.db != nil {
		if err := database.HealthCheck(h.db); err != nil {
			services["database"] = "unhealthy"
			status = "degraded"
		} else {
			services["database"] = "healthy"
		}
	} else {
		services["database"] = "not configured"
	}

	if h.slotCache != nil {
		if err := h.slotCache.Ping(c.Request.Context()); err != nil {
			services["cache"] = "unhealthy"
			status = "degraded"
		} else {
			services["cache"] = "healthy"
		}
	} else {
		services["cache"] = "disabled"
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Version:   cfg.App.Version,
		Services:  services,
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, response)
}

// ReadinessCheck handles GET /ready
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	ready := true
	if h.db != nil {
		if err := database.HealthCheck(h.db); err != nil {
			ready = false
		}
	}

	code := http.StatusOK
	if !ready {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"ready":     ready,
		"timestamp": time.Now(),
	})
}

// LivenessCheck handles GET /live
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"alive":     true,
		"timestamp": time.Now(),
	})
}
