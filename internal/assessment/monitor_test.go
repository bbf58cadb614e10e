package assessment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsBlockedShortcut(t *testing.T) {
	assert.True(t, IsBlockedShortcut("c", true, false))
	assert.True(t, IsBlockedShortcut("V", false, true))
	assert.True(t, IsBlockedShortcut("u", true, false))
	assert.True(t, IsBlockedShortcut("F12", false, false))
	assert.False(t, IsBlockedShortcut("c", false, false))
	assert.False(t, IsBlockedShortcut("s", true, false))
}

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(800 * time.Millisecond)
	t0 := time.Unix(1_700_000_000, 0)

	assert.True(t, d.Allow(t0))
	assert.False(t, d.Allow(t0.Add(799*time.Millisecond)))
	assert.True(t, d.Allow(t0.Add(800*time.Millisecond)))
}

func TestMonitor_WarnsThenTripsOnce(t *testing.T) {
	trips := 0
	m := NewMonitor(2, 800*time.Millisecond, func(int) { trips++ })
	t0 := time.Unix(1_700_000_000, 0)

	obs := m.Report(Signal{Kind: SignalVisibilityHidden, At: t0})
	assert.Equal(t, VerdictWarning, obs.Verdict)
	assert.Equal(t, 1, obs.Remaining)

	obs = m.Report(Signal{Kind: SignalWindowBlur, At: t0.Add(2 * time.Second)})
	assert.Equal(t, VerdictAborted, obs.Verdict)
	assert.Equal(t, 2, obs.Violations)
	assert.Equal(t, 0, obs.Remaining)

	obs = m.Report(Signal{Kind: SignalVisibilityHidden, At: t0.Add(4 * time.Second)})
	assert.Equal(t, VerdictIgnored, obs.Verdict)
	assert.Equal(t, 1, trips)
	assert.False(t, m.Active())
}

func TestMonitor_Classification(t *testing.T) {
	m := NewMonitor(2, 800*time.Millisecond, nil)
	now := time.Now()

	assert.Equal(t, VerdictIgnored, m.Report(Signal{Kind: SignalWindowBlur, At: now, DocumentHasFocus: true}).Verdict)
	assert.Equal(t, VerdictIgnored, m.Report(Signal{Kind: SignalVisibilityVisible, At: now}).Verdict)
	assert.Equal(t, VerdictBlocked, m.Report(Signal{Kind: SignalPaste, At: now}).Verdict)
	assert.Equal(t, VerdictBlocked, m.Report(Signal{Kind: SignalContextMenu, At: now}).Verdict)
	assert.Equal(t, VerdictBlocked, m.Report(Signal{Kind: SignalKeyDown, Key: "a", Ctrl: true, At: now}).Verdict)
	assert.Equal(t, VerdictIgnored, m.Report(Signal{Kind: SignalKeyDown, Key: "a", At: now}).Verdict)
	assert.Equal(t, 0, m.Violations())
}

func TestMonitor_ReleasedIgnoresEverything(t *testing.T) {
	m := NewMonitor(2, 0, nil)
	m.Release()
	m.Release()

	obs := m.Report(Signal{Kind: SignalVisibilityHidden, At: time.Now()})
	assert.Equal(t, VerdictIgnored, obs.Verdict)
	assert.Equal(t, 0, m.Violations())
}
