package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
)

func TestSuspiciousReasons(t *testing.T) {
	origin := SessionOrigin{IPAddress: "10.0.0.1", Fingerprint: "fp-1"}

	tests := []struct {
		name string
		in   ProctoringInput
		want []string
	}{
		{
			name: "same device, neutral event",
			in:   ProctoringInput{EventType: "ANSWER_SELECTED", IPAddress: "10.0.0.1", Fingerprint: "fp-1"},
			want: []string{},
		},
		{
			name: "ip and device changed",
			in:   ProctoringInput{EventType: "ANSWER_SELECTED", IPAddress: "10.0.0.2", Fingerprint: "fp-2"},
			want: []string{ReasonIPChanged, ReasonFingerprintChanged},
		},
		{
			name: "suspicious event type",
			in:   ProctoringInput{EventType: model.EventTabSwitch, IPAddress: "10.0.0.1", Fingerprint: "fp-1"},
			want: []string{"event_type:tab_switch"},
		},
		{
			name: "missing fingerprint",
			in:   ProctoringInput{EventType: model.EventCopyBlocked, IPAddress: "10.0.0.1"},
			want: []string{"event_type:copy_blocked", ReasonMissingFingerprint},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuspiciousReasons(tt.in, origin))
		})
	}
}

func TestSuspiciousReasons_FirstEvent(t *testing.T) {
	got := SuspiciousReasons(ProctoringInput{EventType: "STARTED", IPAddress: "1.1.1.1", Fingerprint: "x"}, SessionOrigin{})
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Len(t, truncate(strings.Repeat("f", 300), maxFingerprintLength), maxFingerprintLength)

	assert.Equal(t, "hé", truncate("héllo", 2))
	long := truncate(strings.Repeat("é", 300), maxFingerprintLength)
	assert.True(t, utf8.ValidString(long))
	assert.Equal(t, maxFingerprintLength, utf8.RuneCountInString(long))
}
