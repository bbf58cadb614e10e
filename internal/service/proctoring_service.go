package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pathfinder-edu/pathfinder-backend/internal/config"
	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
)

const (
	maxFingerprintLength = 128
	maxUserAgentLength   = 500
)

// Suspicious reasons attached by the server.
const (
	ReasonIPChanged          = "ip_changed_within_session"
	ReasonFingerprintChanged = "device_fingerprint_changed_within_session"
	ReasonMissingFingerprint = "missing_device_fingerprint"
)

var suspiciousEventTypes = map[model.ProctoringEventType]struct{}{
	model.EventTabSwitch:            {},
	model.EventWindowBlur:           {},
	model.EventAssessmentTerminated: {},
	model.EventCopyBlocked:          {},
	model.EventCutBlocked:           {},
	model.EventPasteBlocked:         {},
	model.EventContextMenuBlocked:   {},
	model.EventShortcutBlocked:      {},
}

// ProctoringInput is one event as observed at the edge.
type ProctoringInput struct {
	StudentID        int
	SessionID        string
	AssessmentSkill  string
	EventType        model.ProctoringEventType
	ClientSuspicious bool
	ClientTimestamp  *time.Time
	IPAddress        string
	UserAgent        string
	Fingerprint      string
	Metadata         map[string]any
}

// SessionOrigin is the first ip and fingerprint seen in a proctoring session.
type SessionOrigin struct {
	IPAddress   string
	Fingerprint string
}

// ProctoringService flags integrity events and queues them for storage.
type ProctoringService struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

// NewProctoringService creates a new ProctoringService.
func NewProctoringService(rdb *redis.Client, ttl time.Duration) *ProctoringService {
	return &ProctoringService{rdb: rdb, ttl: ttl, now: time.Now}
}

// Record evaluates an event and pushes it to the proctoring queue.
func (s *ProctoringService) Record(ctx context.Context, in ProctoringInput) (*model.ProctoringEvent, error) {
	in.Fingerprint = truncate(strings.TrimSpace(in.Fingerprint), maxFingerprintLength)
	in.UserAgent = truncate(in.UserAgent, maxUserAgentLength)
	in.EventType = model.ProctoringEventType(strings.ToUpper(strings.TrimSpace(string(in.EventType))))

	origin, err := s.origin(ctx, in)
	if err != nil {
		return nil, err
	}

	reasons := SuspiciousReasons(in, origin)
	ev := &model.ProctoringEvent{
		ID:                uuid.New(),
		StudentID:         in.StudentID,
		SessionID:         in.SessionID,
		AssessmentSkill:   in.AssessmentSkill,
		EventType:         in.EventType,
		Suspicious:        in.ClientSuspicious || len(reasons) > 0,
		SuspiciousReasons: reasons,
		ClientTimestamp:   in.ClientTimestamp,
		ServerTimestamp:   s.now().UTC(),
		IPAddress:         in.IPAddress,
		UserAgent:         in.UserAgent,
		DeviceFingerprint: in.Fingerprint,
		Metadata:          in.Metadata,
	}
	if ev.Metadata == nil {
		ev.Metadata = map[string]any{}
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal proctoring event: %w", err)
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistProctoringEventsQueue, data).Err(); err != nil {
		return nil, fmt.Errorf("queue proctoring event: %w", err)
	}
	return ev, nil
}

// origin stores the first ip and fingerprint of the session and returns
// whatever was stored first.
func (s *ProctoringService) origin(ctx context.Context, in ProctoringInput) (SessionOrigin, error) {
	key := config.CacheKey.ProctoringSessionKey(in.StudentID, in.SessionID)

	var values *redis.SliceCmd
	_, err := s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		if in.IPAddress != "" {
			pipe.HSetNX(ctx, key, "ip", in.IPAddress)
		}
		if in.Fingerprint != "" {
			pipe.HSetNX(ctx, key, "fingerprint", in.Fingerprint)
		}
		pipe.Expire(ctx, key, s.ttl)
		values = pipe.HMGet(ctx, key, "ip", "fingerprint")
		return nil
	})
	if err != nil {
		return SessionOrigin{}, fmt.Errorf("proctoring session origin: %w", err)
	}

	vals := values.Val()
	origin := SessionOrigin{}
	if len(vals) == 2 {
		origin.IPAddress, _ = vals[0].(string)
		origin.Fingerprint, _ = vals[1].(string)
	}
	return origin, nil
}

// SuspiciousReasons lists why an event looks suspicious compared with the
// session origin. The result is never nil.
func SuspiciousReasons(in ProctoringInput, origin SessionOrigin) []string {
	reasons := []string{}
	if origin.IPAddress != "" && in.IPAddress != "" && origin.IPAddress != in.IPAddress {
		reasons = append(reasons, ReasonIPChanged)
	}
	if origin.Fingerprint != "" && in.Fingerprint != "" && origin.Fingerprint != in.Fingerprint {
		reasons = append(reasons, ReasonFingerprintChanged)
	}
	if _, ok := suspiciousEventTypes[in.EventType]; ok {
		reasons = append(reasons, "event_type:"+strings.ToLower(string(in.EventType)))
	}
	if in.Fingerprint == "" {
		reasons = append(reasons, ReasonMissingFingerprint)
	}
	return reasons
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
