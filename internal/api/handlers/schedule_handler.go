package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	domain "school-timetable/internal/domain/timetable"
	"school-timetable/internal/service"
	"school-timetable/pkg/logger"
	"school-timetable/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IdempotencyStore replays stored responses for repeated save requests;
// satisfied by cache.RedisCache. A nil store disables replay.
type IdempotencyStore interface {
	GetIdempotentResponse(ctx context.Context, key string) ([]byte, error)
	StoreIdempotentResponse(ctx context.Context, key string, payload []byte) error
}

type idempotentResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// ScheduleHandler handles schedule slot and class-schedule HTTP requests
type ScheduleHandler struct {
	scheduleService  *service.ScheduleService
	idempotencyStore IdempotencyStore
}

// NewScheduleHandler creates a new schedule handler; idempotencyStore
// may be nil
func NewScheduleHandler(scheduleService *service.ScheduleService, idempotencyStore IdempotencyStore) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService:  scheduleService,
		idempotencyStore: idempotencyStore,
	}
}

// ListSlots handles GET /schedule-slots with optional ?teacher_id=
func (h *ScheduleHandler) ListSlots(c *gin.Context) {
	var teacherID *uuid.UUID
	if raw := c.Query("teacher_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, APIResponse{
				Success: false,
				Message: "Invalid teacher_id format",
			})
			return
		}
		teacherID = &parsed
	}

	slots, err := h.scheduleService.ListSlots(c.Request.Context(), teacherID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: "Failed to list schedule slots",
			Errors:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    slots,
	})
}

// CreateSlot handles POST /schedule-slots
func (h *ScheduleHandler) CreateSlot(c *gin.Context) {
	var req domain.CreateSlotRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  validator.FormatValidationError(err),
		})
		return
	}

	slot, err := h.scheduleService.CreateSlot(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: "Failed to create schedule slot",
			Errors:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Schedule slot created successfully",
		Data:    slot,
	})
}

// UpdateSlot handles PATCH /schedule-slots/:id
func (h *ScheduleHandler) UpdateSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid slot ID format",
		})
		return
	}

	var req domain.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  validator.FormatValidationError(err),
		})
		return
	}

	slot, err := h.scheduleService.UpdateSlot(c.Request.Context(), id, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: "Failed to update schedule slot",
			Errors:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Schedule slot updated successfully",
		Data:    slot,
	})
}

// DeleteSlot handles DELETE /schedule-slots/:id
func (h *ScheduleHandler) DeleteSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid slot ID format",
		})
		return
	}

	if err := h.scheduleService.DeleteSlot(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: "Failed to delete schedule slot",
			Errors:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Schedule slot deleted successfully",
	})
}

// GetClassSchedule handles GET /class-schedules/:grade/:section
func (h *ScheduleHandler) GetClassSchedule(c *gin.Context) {
	grade, section, ok := parseGradeSection(c)
	if !ok {
		return
	}

	slots, err := h.scheduleService.GetGradeSectionSchedule(c.Request.Context(), grade, section)
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: "Failed to get class schedule",
			Errors:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    slots,
	})
}

// PatchClassSchedule handles PATCH /class-schedules/:grade/:section.
// The staged cell edits are merged over the persisted schedule; any
// teacher double-booking across grade/sections blocks the whole save.
func (h *ScheduleHandler) PatchClassSchedule(c *gin.Context) {
	grade, section, ok := parseGradeSection(c)
	if !ok {
		return
	}

	idempotencyKey := c.GetString("idempotency_key")
	if idempotencyKey != "" && h.idempotencyStore != nil {
		if payload, err := h.idempotencyStore.GetIdempotentResponse(c.Request.Context(), idempotencyKey); err == nil {
			var stored idempotentResponse
			if err := json.Unmarshal(payload, &stored); err == nil {
				logger.Info("Replaying stored response for idempotency key %s", idempotencyKey)
				c.Data(stored.Status, "application/json", stored.Body)
				return
			}
		}
	}

	var req domain.PartialUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  validator.FormatValidationError(err),
		})
		return
	}

	result, err := h.scheduleService.ApplyPartialUpdate(c.Request.Context(), grade, section, req.Slots)
	if err != nil {
		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) {
			h.respond(c, idempotencyKey, http.StatusConflict, APIResponse{
				Success: false,
				Message: "Schedule conflicts detected, nothing was saved",
				Errors:  conflictErr.Conflicts,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: "Failed to save class schedule",
			Errors:  err.Error(),
		})
		return
	}

	if result.NoChanges {
		h.respond(c, idempotencyKey, http.StatusOK, APIResponse{
			Success: true,
			Message: "No changes to save",
			Data:    result.Slots,
		})
		return
	}

	h.respond(c, idempotencyKey, http.StatusOK, APIResponse{
		Success: true,
		Message: "Class schedule saved successfully",
		Data:    result.Slots,
	})
}

// respond writes the response and records it for idempotent replay
func (h *ScheduleHandler) respond(c *gin.Context, idempotencyKey string, status int, body APIResponse) {
	c.JSON(status, body)

	if idempotencyKey == "" || h.idempotencyStore == nil {
		return
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return
	}
	payload, err := json.Marshal(idempotentResponse{Status: status, Body: raw})
	if err != nil {
		return
	}
	if err := h.idempotencyStore.StoreIdempotentResponse(c.Request.Context(), idempotencyKey, payload); err != nil {
		logger.Debug("Failed to store idempotency record: %v", err)
	}
}

func parseGradeSection(c *gin.Context) (int, int, bool) {
	grade, err := strconv.Atoi(c.Param("grade"))
	if err != nil || grade < 1 {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid grade",
		})
		return 0, 0, false
	}

	section, err := strconv.Atoi(c.Param("section"))
	if err != nil || section < 1 {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid section",
		})
		return 0, 0, false
	}

	return grade, section, true
}
