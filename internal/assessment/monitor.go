package assessment

import (
	"strings"
	"time"
)

// SignalKind names a client-side event reported to the integrity monitor.
type SignalKind string

const (
	SignalVisibilityHidden  SignalKind = "visibility_hidden"
	SignalVisibilityVisible SignalKind = "visibility_visible"
	SignalWindowBlur        SignalKind = "window_blur"
	SignalCopy              SignalKind = "copy"
	SignalCut               SignalKind = "cut"
	SignalPaste             SignalKind = "paste"
	SignalContextMenu       SignalKind = "context_menu"
	SignalKeyDown           SignalKind = "keydown"
)

// Signal is one observed client event.
type Signal struct {
	Kind SignalKind
	At   time.Time

	// DocumentHasFocus accompanies window_blur; a blur while the document
	// still has focus is not a violation.
	DocumentHasFocus bool

	// Key, Ctrl and Meta accompany keydown.
	Key  string
	Ctrl bool
	Meta bool
}

// Verdict is the monitor's decision for one signal.
type Verdict string

const (
	VerdictIgnored   Verdict = "ignored"
	VerdictBlocked   Verdict = "blocked"
	VerdictDebounced Verdict = "debounced"
	VerdictWarning   Verdict = "warning"
	VerdictAborted   Verdict = "aborted"
)

// Observation is what Report returns to the caller.
type Observation struct {
	Verdict    Verdict
	Violations int
	Remaining  int
}

var blockedShortcutKeys = map[string]struct{}{
	"c": {}, "v": {}, "x": {}, "a": {}, "u": {},
}

// IsBlockedShortcut reports whether a key combination is one the client
// must suppress: copy, paste, cut, select-all, view-source and devtools.
func IsBlockedShortcut(key string, ctrl, meta bool) bool {
	k := strings.ToLower(key)
	if k == "f12" {
		return true
	}
	if !ctrl && !meta {
		return false
	}
	_, ok := blockedShortcutKeys[k]
	return ok
}

// Debouncer suppresses repeated events inside a fixed window.
type Debouncer struct {
	window time.Duration
	last   time.Time
	seen   bool
}

// NewDebouncer returns a Debouncer with the given window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Allow reports whether an event at t falls outside the window of the last
// allowed event, and records it if so.
func (d *Debouncer) Allow(t time.Time) bool {
	if d.seen && t.Sub(d.last) < d.window {
		return false
	}
	d.last = t
	d.seen = true
	return true
}

// Monitor counts focus violations and trips once the limit is reached.
// It holds no goroutines; the owner calls Release when monitoring ends and
// every later Report is ignored.
type Monitor struct {
	max        int
	debounce   *Debouncer
	violations int
	tripped    bool
	released   bool
	onTrip     func(violations int)
}

// NewMonitor acquires a monitor that calls onTrip exactly once when the
// violation count reaches max.
func NewMonitor(max int, window time.Duration, onTrip func(violations int)) *Monitor {
	return &Monitor{
		max:      max,
		debounce: NewDebouncer(window),
		onTrip:   onTrip,
	}
}

// Active reports whether the monitor still accepts signals.
func (m *Monitor) Active() bool {
	return m != nil && !m.released && !m.tripped
}

// Violations returns the number of counted violations.
func (m *Monitor) Violations() int {
	return m.violations
}

// Release stops monitoring. It is idempotent.
func (m *Monitor) Release() {
	m.released = true
}

// Report classifies a signal and applies the violation policy.
func (m *Monitor) Report(sig Signal) Observation {
	obs := Observation{Verdict: VerdictIgnored, Violations: m.violations, Remaining: m.max - m.violations}
	if !m.Active() {
		return obs
	}

	switch sig.Kind {
	case SignalCopy, SignalCut, SignalPaste, SignalContextMenu:
		obs.Verdict = VerdictBlocked
		return obs
	case SignalKeyDown:
		if IsBlockedShortcut(sig.Key, sig.Ctrl, sig.Meta) {
			obs.Verdict = VerdictBlocked
		}
		return obs
	case SignalVisibilityHidden:
	case SignalWindowBlur:
		if sig.DocumentHasFocus {
			return obs
		}
	default:
		return obs
	}

	if !m.debounce.Allow(sig.At) {
		obs.Verdict = VerdictDebounced
		return obs
	}

	m.violations++
	obs.Violations = m.violations
	obs.Remaining = m.max - m.violations
	if obs.Remaining > 0 {
		obs.Verdict = VerdictWarning
		return obs
	}

	obs.Remaining = 0
	obs.Verdict = VerdictAborted
	m.tripped = true
	if m.onTrip != nil {
		m.onTrip(m.violations)
	}
	return obs
}

// Counts reports whether a signal kind can ever count as a violation.
func (k SignalKind) Counts() bool {
	return k == SignalVisibilityHidden || k == SignalWindowBlur
}
