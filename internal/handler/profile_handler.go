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

// ProfileHandler handles the student profile.
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile godoc
// GET /api/v1/student/profile
// Returns the profile, empty when it was never saved.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)

	profile, err := h.profileService.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile godoc
// PUT /api/v1/student/profile
// Saves the editable profile fields.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.UpdateProfileRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}
