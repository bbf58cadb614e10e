package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathfinder-edu/pathfinder-backend/internal/middleware"
	"github.com/pathfinder-edu/pathfinder-backend/internal/response"
	"github.com/pathfinder-edu/pathfinder-backend/internal/service"
)

// AnalysisHandler serves academic analysis and roadmaps.
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// GetAnalysis godoc
// GET /api/v1/student/analysis
// Returns CGPA, the semester breakdown and the domain recommendation.
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	claims := middleware.GetClaims(c)

	report, err := h.analysisService.Analyze(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, report)
}

// GetRoadmap godoc
// GET /api/v1/student/roadmap
// Returns the learning roadmap of the recommended domain.
func (h *AnalysisHandler) GetRoadmap(c *gin.Context) {
	claims := middleware.GetClaims(c)

	view, err := h.analysisService.Roadmap(c.Request.Context(), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoResults):
			response.Fail(c, http.StatusNotFound, response.ErrNoResults)
		case errors.Is(err, service.ErrRoadmapUnavailable):
			response.Fail(c, http.StatusNotFound, response.ErrRoadmapUnavailable)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, view)
}
