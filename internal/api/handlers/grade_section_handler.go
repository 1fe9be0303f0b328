package handlers

import (
	"net/http"
	"strconv"

	"school-timetable/internal/service"
	"school-timetable/pkg/validator"

	"github.com/gin-gonic/gin"
)

// GradeSectionHandler handles grade-section config HTTP requests
type GradeSectionHandler struct {
	gradeSectionService *service.GradeSectionService
}

// NewGradeSectionHandler creates a new grade-section handler
func NewGradeSectionHandler(gradeSectionService *service.GradeSectionService) *GradeSectionHandler {
	return &GradeSectionHandler{
		gradeSectionService: gradeSectionService,
	}
}

// GetAll handles GET /grade-sections
func (h *GradeSectionHandler) GetAll(c *gin.Context) {
	sections, err := h.gradeSectionService.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: "Failed to load grade sections",
			Errors:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    sections,
	})
}

// GetByGrade handles GET /grade-sections/:grade
func (h *GradeSectionHandler) GetByGrade(c *gin.Context) {
	grade, err := strconv.Atoi(c.Param("grade"))
	if err != nil || grade < 1 {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid grade",
		})
		return
	}

	sections, err := h.gradeSectionService.GetSections(c.Request.Context(), grade)
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: "Failed to load grade sections",
			Errors:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data: gin.H{
			"grade":    grade,
			"sections": sections,
		},
	})
}

// UpdateByGrade handles PUT /grade-sections/:grade
func (h *GradeSectionHandler) UpdateByGrade(c *gin.Context) {
	grade, err := strconv.Atoi(c.Param("grade"))
	if err != nil || grade < 1 {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid grade",
		})
		return
	}

	type updateRequest struct {
		Sections []int `json:"sections" validate:"required,min=1,dive,gte=1"`
	}

	var req updateRequest
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

	cfg, err := h.gradeSectionService.UpdateSections(c.Request.Context(), grade, req.Sections)
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: "Failed to update grade sections",
			Errors:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Grade sections updated successfully",
		Data:    cfg,
	})
}
