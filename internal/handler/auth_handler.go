package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathfinder-edu/pathfinder-backend/internal/middleware"
	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
	"github.com/pathfinder-edu/pathfinder-backend/internal/repository"
	"github.com/pathfinder-edu/pathfinder-backend/internal/response"
	"github.com/pathfinder-edu/pathfinder-backend/internal/service"
	"github.com/pathfinder-edu/pathfinder-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService    *service.AuthService
	studentService *service.StudentService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, studentService *service.StudentService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		studentService: studentService,
	}
}

// Register godoc
// POST /api/v1/auth/register
// Creates an account and signs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			response.Fail(c, http.StatusConflict, response.ErrEmailTaken)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	token, err := h.authService.GenerateStudentToken(c.Request.Context(), student.ID, student.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, model.AuthResponse{Token: token, Student: *student})
}

// Login godoc
// POST /api/v1/auth/login
// Validates email + password and returns a JWT. A new login replaces the
// session of any other device.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	token, err := h.authService.GenerateStudentToken(c.Request.Context(), student.ID, student.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, model.AuthResponse{Token: token, Student: *student})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the currently authenticated student.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// Logout godoc
// POST /api/v1/auth/logout
// Ends the current session.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.ResetStudentSession(c.Request.Context(), claims.UserID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
