package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pathfinder-edu/pathfinder-backend/internal/middleware"
	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
	"github.com/pathfinder-edu/pathfinder-backend/internal/response"
	"github.com/pathfinder-edu/pathfinder-backend/internal/service"
	"github.com/pathfinder-edu/pathfinder-backend/internal/validator"
)

// ProctoringHandler records client integrity events.
type ProctoringHandler struct {
	recorder service.EventRecorder
}

// NewProctoringHandler creates a new ProctoringHandler.
func NewProctoringHandler(recorder service.EventRecorder) *ProctoringHandler {
	return &ProctoringHandler{recorder: recorder}
}

// RecordEvent godoc
// POST /api/v1/student/proctoring/events
// Flags the event against the session's first ip and device and queues it.
func (h *ProctoringHandler) RecordEvent(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.ProctoringEventRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ev, err := h.recorder.Record(c.Request.Context(), service.ProctoringInput{
		StudentID:        claims.UserID,
		SessionID:        strings.TrimSpace(req.SessionID),
		AssessmentSkill:  strings.TrimSpace(req.AssessmentSkill),
		EventType:        model.ProctoringEventType(req.EventType),
		ClientSuspicious: req.Suspicious,
		ClientTimestamp:  req.ClientTimestamp,
		IPAddress:        clientIP(c),
		UserAgent:        c.Request.UserAgent(),
		Fingerprint:      req.DeviceFingerprint,
		Metadata:         req.Metadata,
	})
	if err != nil {
		response.Fail(c, http.StatusServiceUnavailable, response.ErrUnavailable)
		return
	}

	response.Success(c, http.StatusCreated, model.ProctoringEventResponse{
		ID:                ev.ID,
		ServerTimestamp:   ev.ServerTimestamp,
		Suspicious:        ev.Suspicious,
		SuspiciousReasons: ev.SuspiciousReasons,
		IPAddress:         ev.IPAddress,
	})
}

// clientIP prefers the first X-Forwarded-For entry set by the edge proxy.
func clientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	return c.ClientIP()
}
