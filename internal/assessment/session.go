package assessment

import (
	"errors"
	"time"
)

// State is the lifecycle position of a Session.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateAborted    State = "aborted"
)

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateAborted
}

// NoSelection is the option index meaning nothing was chosen.
const NoSelection = -1

var (
	ErrNoSkills       = errors.New("enter at least one skill to start the assessment")
	ErrNoAnswer       = errors.New("select an option before continuing")
	ErrInvalidOption  = errors.New("selected option is out of range")
	ErrNotInProgress  = errors.New("assessment is not in progress")
	ErrAlreadyStarted = errors.New("assessment has already started")
	ErrSessionClosed  = errors.New("assessment session is closed")
)

// Config holds the fixed policy of an assessment.
type Config struct {
	Rounds        int
	StartLevel    Difficulty
	BaselineLevel Difficulty
	MaxViolations int
	Debounce      time.Duration
}

// DefaultConfig returns the standard five-round policy.
func DefaultConfig() Config {
	return Config{
		Rounds:        5,
		StartLevel:    DifficultyMedium,
		BaselineLevel: DifficultyEasy,
		MaxViolations: 2,
		Debounce:      800 * time.Millisecond,
	}
}

// Step describes the outcome of one scored answer.
type Step struct {
	Correct    bool
	Round      int
	Difficulty Difficulty
	Next       *Question
	Result     *Result
}

// Session is one adaptive assessment. It is not safe for concurrent use;
// callers serialize Start, Answer, Observe and Close.
type Session struct {
	cfg      Config
	selector *Selector

	state      State
	skills     []string
	categories []Category
	round      int
	difficulty Difficulty
	highest    Difficulty
	correct    int
	used       map[string]struct{}
	current    Question

	monitor *Monitor
	result  *Result
	closed  bool
}

// NewSession returns a session in the NotStarted state.
func NewSession(selector *Selector, cfg Config) *Session {
	return &Session{
		cfg:      cfg,
		selector: selector,
		state:    StateNotStarted,
		used:     make(map[string]struct{}),
	}
}

// Start resolves the skill text and draws the first question.
func (s *Session) Start(skillText string) (Question, error) {
	if s.closed {
		return Question{}, ErrSessionClosed
	}
	if s.state != StateNotStarted {
		return Question{}, ErrAlreadyStarted
	}

	names := ParseSkills(skillText)
	categories := resolveNames(names)
	if len(categories) == 0 {
		return Question{}, ErrNoSkills
	}

	s.skills = names
	s.categories = categories
	s.round = 1
	s.difficulty = s.cfg.StartLevel
	s.highest = s.cfg.BaselineLevel
	s.correct = 0
	s.present(s.selector.Pick(s.categories, s.difficulty, s.used))

	s.monitor = NewMonitor(s.cfg.MaxViolations, s.cfg.Debounce, s.abort)
	s.state = StateInProgress
	return s.current, nil
}

// Answer scores the current question and either advances or completes.
func (s *Session) Answer(choice int) (Step, error) {
	if s.closed {
		return Step{}, ErrSessionClosed
	}
	if s.state != StateInProgress {
		return Step{}, ErrNotInProgress
	}
	if choice == NoSelection {
		return Step{}, ErrNoAnswer
	}
	if choice < 0 || choice >= len(s.current.Options) {
		return Step{}, ErrInvalidOption
	}

	step := Step{Round: s.round, Difficulty: s.difficulty}
	var next Difficulty
	if s.current.IsCorrect(choice) {
		step.Correct = true
		s.correct++
		if s.difficulty > s.highest {
			s.highest = s.difficulty
		}
		next = s.difficulty.Harder()
	} else {
		next = s.difficulty.Easier()
	}

	if s.round >= s.cfg.Rounds {
		r := s.finish(s.highest, s.correct, "")
		s.state = StateCompleted
		step.Result = &r
		return step, nil
	}

	s.round++
	s.difficulty = next
	s.present(s.selector.Pick(s.categories, s.difficulty, s.used))
	q := s.current
	step.Next = &q
	return step, nil
}

// Observe feeds a client signal to the integrity monitor. An aborted
// observation leaves the session in StateAborted with its result set.
func (s *Session) Observe(sig Signal) (Observation, error) {
	if s.closed {
		return Observation{Verdict: VerdictIgnored}, ErrSessionClosed
	}
	if s.state != StateInProgress {
		return Observation{Verdict: VerdictIgnored}, nil
	}
	return s.monitor.Report(sig), nil
}

// Close releases the monitor. A session closed before reaching a terminal
// state produces no result.
func (s *Session) Close() {
	if s.monitor != nil {
		s.monitor.Release()
	}
	s.closed = true
}

func (s *Session) abort(violations int) {
	if s.state != StateInProgress {
		return
	}
	s.finish(s.cfg.BaselineLevel, 0, AbortReason(violations))
	s.state = StateAborted
}

func (s *Session) finish(highest Difficulty, correct int, reason string) Result {
	violations := 0
	if s.monitor != nil {
		violations = s.monitor.Violations()
		s.monitor.Release()
	}
	r := newResult(s.skills, s.categories, highest, correct, s.cfg.Rounds, violations, reason)
	s.result = &r
	return r
}

func (s *Session) present(q Question) {
	s.current = q
	s.used[q.ID] = struct{}{}
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Round returns the 1-based round of the current question.
func (s *Session) Round() int { return s.round }

// Difficulty returns the difficulty of the current question.
func (s *Session) Difficulty() Difficulty { return s.difficulty }

// HighestLevel returns the highest difficulty answered correctly so far.
func (s *Session) HighestLevel() Difficulty { return s.highest }

// CorrectCount returns the number of correct answers so far.
func (s *Session) CorrectCount() int { return s.correct }

// Current returns the question being shown.
func (s *Session) Current() Question { return s.current }

// Categories returns the resolved skill categories.
func (s *Session) Categories() []Category { return s.categories }

// Skills returns the parsed skill names.
func (s *Session) Skills() []string { return s.skills }

// Rounds returns the fixed number of rounds.
func (s *Session) Rounds() int { return s.cfg.Rounds }

// Result returns the final result once the session is terminal.
func (s *Session) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Violations returns the counted integrity violations.
func (s *Session) Violations() int {
	if s.monitor == nil {
		return 0
	}
	return s.monitor.Violations()
}
