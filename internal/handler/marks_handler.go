package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathfinder-edu/pathfinder-backend/internal/middleware"
	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
	"github.com/pathfinder-edu/pathfinder-backend/internal/response"
	"github.com/pathfinder-edu/pathfinder-backend/internal/service"
	"github.com/pathfinder-edu/pathfinder-backend/internal/validator"
)

// MarksHandler handles manual grade entry.
type MarksHandler struct {
	marksService *service.MarksService
}

// NewMarksHandler creates a new MarksHandler.
func NewMarksHandler(marksService *service.MarksService) *MarksHandler {
	return &MarksHandler{marksService: marksService}
}

// SaveMarks godoc
// POST /api/v1/student/marks
// Replaces every subject of one semester.
func (h *MarksHandler) SaveMarks(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.ManualMarksRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	results, err := h.marksService.ReplaceSemester(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"semester": req.Semester,
		"subjects": results,
	})
}

// ListMarks godoc
// GET /api/v1/student/marks
func (h *MarksHandler) ListMarks(c *gin.Context) {
	claims := middleware.GetClaims(c)

	results, err := h.marksService.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"results": results})
}
