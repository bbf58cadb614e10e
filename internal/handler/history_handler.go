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

// HistoryHandler serves past assessment results.
type HistoryHandler struct {
	historyService *service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// ListAssessments godoc
// GET /api/v1/student/assessments?page=&per_page=
// Returns stored assessment results, latest first.
func (h *HistoryHandler) ListAssessments(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var q model.AssessmentHistoryQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	results, pagination, err := h.historyService.List(c.Request.Context(), claims.UserID, q.Page, q.PerPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"assessments": results}, pagination)
}

// LatestAssessment godoc
// GET /api/v1/student/assessments/latest
func (h *HistoryHandler) LatestAssessment(c *gin.Context) {
	claims := middleware.GetClaims(c)

	latest, err := h.historyService.Latest(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if latest == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assessment": latest})
}
