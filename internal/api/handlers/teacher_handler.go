package handlers

import (
	"net/http"

	domain "school-timetable/internal/domain/timetable"
	"school-timetable/internal/service"
	"school-timetable/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// TeacherHandler handles teacher roster HTTP requests
type TeacherHandler struct {
	teacherService *service.TeacherService
}

// NewTeacherHandler creates a new teacher handler
func NewTeacherHandler(teacherService *service.TeacherService) *TeacherHandler {
	return &TeacherHandler{
		teacherService: teacherService,
	}
}

// CreateTeacher handles POST /teachers
func (h *TeacherHandler) CreateTeacher(c *gin.Context) {
	var req domain.CreateTeacherRequest

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

	teacher, err := h.teacherService.CreateTeacher(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: "Failed to create teacher",
			Errors:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Teacher created successfully",
		Data:    teacher,
	})
}

// ListTeachers handles GET /teachers
func (h *TeacherHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.teacherService.ListTeachers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: "Failed to list teachers",
			Errors:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    teachers,
	})
}

// GetTeacher handles GET /teachers/:id
func (h *TeacherHandler) GetTeacher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid teacher ID format",
		})
		return
	}

	teacher, err := h.teacherService.GetTeacher(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, APIResponse{
			Success: false,
			Message: "Teacher not found",
			Errors:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    teacher,
	})
}

// UpdateTeacher handles PATCH /teachers/:id
func (h *TeacherHandler) UpdateTeacher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid teacher ID format",
		})
		return
	}

	var req domain.UpdateTeacherRequest
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

	teacher, err := h.teacherService.UpdateTeacher(c.Request.Context(), id, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: "Failed to update teacher",
			Errors:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Teacher updated successfully",
		Data:    teacher,
	})
}

// DeleteTeacher handles DELETE /teachers/:id
func (h *TeacherHandler) DeleteTeacher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid teacher ID format",
		})
		return
	}

	if err := h.teacherService.DeleteTeacher(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: "Failed to delete teacher",
			Errors:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Teacher deleted successfully",
	})
}

// GetTeacherSchedule handles GET /teachers/:id/schedule
func (h *TeacherHandler) GetTeacherSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid teacher ID format",
		})
		return
	}

	slots, err := h.teacherService.GetTeacherSchedule(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, APIResponse{
			Success: false,
			Message: "Failed to get teacher schedule",
			Errors:  err.Error(),
		})
		return
	}

	// Grouped by day in grid order for the per-teacher weekly view
	byDay := make(map[domain.Weekday][]*domain.ScheduleSlot)
	for _, slot := range slots {
		byDay[slot.Day] = append(byDay[slot.Day], slot)
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data: gin.H{
			"teacher_id": id,
			"slots":      slots,
			"by_day":     byDay,
		},
	})
}
