package model

import (
	"time"

	"github.com/google/uuid"
)

// ProctoringEventType names a client integrity event.
type ProctoringEventType string

const (
	EventTabSwitch            ProctoringEventType = "TAB_SWITCH"
	EventWindowBlur           ProctoringEventType = "WINDOW_BLUR"
	EventCopyBlocked          ProctoringEventType = "COPY_BLOCKED"
	EventCutBlocked           ProctoringEventType = "CUT_BLOCKED"
	EventPasteBlocked         ProctoringEventType = "PASTE_BLOCKED"
	EventContextMenuBlocked   ProctoringEventType = "CONTEXT_MENU_BLOCKED"
	EventShortcutBlocked      ProctoringEventType = "SHORTCUT_BLOCKED"
	EventAssessmentTerminated ProctoringEventType = "ASSESSMENT_TERMINATED"
)

// ProctoringEvent is one recorded integrity event.
type ProctoringEvent struct {
	ID                uuid.UUID           `json:"id"`
	StudentID         int                 `json:"student_id"`
	SessionID         string              `json:"session_id"`
	AssessmentSkill   string              `json:"assessment_skill"`
	EventType         ProctoringEventType `json:"event_type"`
	Suspicious        bool                `json:"suspicious"`
	SuspiciousReasons []string            `json:"suspicious_reasons"`
	ClientTimestamp   *time.Time          `json:"client_timestamp,omitempty"`
	ServerTimestamp   time.Time           `json:"server_timestamp"`
	IPAddress         string              `json:"ip_address"`
	UserAgent         string              `json:"user_agent"`
	DeviceFingerprint string              `json:"device_fingerprint"`
	Metadata          map[string]any      `json:"metadata"`
}

// ProctoringEventRequest is the payload of POST /student/proctoring/events.
type ProctoringEventRequest struct {
	SessionID         string         `json:"assessment_session_id" binding:"required,max=64"`
	AssessmentSkill   string         `json:"assessment_skill" binding:"omitempty,max=100"`
	EventType         string         `json:"event_type" binding:"required,max=64"`
	Suspicious        bool           `json:"suspicious"`
	ClientTimestamp   *time.Time     `json:"client_timestamp"`
	DeviceFingerprint string         `json:"device_fingerprint" binding:"omitempty,max=256"`
	Metadata          map[string]any `json:"metadata"`
}

// ProctoringEventResponse acknowledges a recorded event.
type ProctoringEventResponse struct {
	ID                uuid.UUID `json:"id"`
	ServerTimestamp   time.Time `json:"server_timestamp"`
	Suspicious        bool      `json:"suspicious"`
	SuspiciousReasons []string  `json:"suspicious_reasons"`
	IPAddress         string    `json:"ip_address"`
}
