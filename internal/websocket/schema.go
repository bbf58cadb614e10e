package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionStart  Action = "start"
	ActionAnswer Action = "answer"
	ActionSignal Action = "signal"
	ActionPing   Action = "ping"
)

// Request is every client frame. Fields beyond Action are read per action:
// start uses Skills, answer uses Option, signal uses the signal fields.
type Request struct {
	Action Action `json:"action"`

	Skills string `json:"skills,omitempty"`
	Option *int   `json:"option,omitempty"`

	Signal           string `json:"signal,omitempty"`
	DocumentHasFocus bool   `json:"document_has_focus,omitempty"`
	Key              string `json:"key,omitempty"`
	Ctrl             bool   `json:"ctrl,omitempty"`
	Meta             bool   `json:"meta,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventReady     Event = "ready"
	EventQuestion  Event = "question"
	EventWarning   Event = "warning"
	EventBlocked   Event = "blocked"
	EventCompleted Event = "completed"
	EventAborted   Event = "aborted"
	EventError     Event = "error"
	EventPong      Event = "pong"
)

// ReadyResponse is sent once on connect with the preloaded skills text.
type ReadyResponse struct {
	Event     Event  `json:"event"`
	SessionID string `json:"session_id"`
	Skills    string `json:"skills"`
}

// QuestionPayload never carries the correct option.
type QuestionPayload struct {
	ID         string   `json:"id"`
	Prompt     string   `json:"prompt"`
	Options    []string `json:"options"`
	Category   string   `json:"category"`
	Difficulty int      `json:"difficulty"`
}

type QuestionResponse struct {
	Event      Event           `json:"event"`
	Round      int             `json:"round"`
	Total      int             `json:"total"`
	Difficulty string          `json:"difficulty"`
	Skills     []string        `json:"skills,omitempty"`
	Previous   *bool           `json:"previous_correct,omitempty"`
	Question   QuestionPayload `json:"question"`
}

type WarningResponse struct {
	Event      Event  `json:"event"`
	Violations int    `json:"violations"`
	Remaining  int    `json:"remaining"`
	Message    string `json:"message"`
}

type BlockedResponse struct {
	Event  Event  `json:"event"`
	Signal string `json:"signal"`
}

// ResultPayload mirrors the stored assessment result.
type ResultPayload struct {
	SkillLabel      string   `json:"skill_label"`
	Categories      []string `json:"categories"`
	HighestLevel    int      `json:"highest_level"`
	LevelLabel      string   `json:"level_label"`
	LevelName       string   `json:"level_name"`
	LevelSummary    string   `json:"level_description"`
	AccuracyPercent int      `json:"accuracy_percent"`
	TotalQuestions  int      `json:"total_questions"`
	CorrectAnswers  int      `json:"correct_answers"`
	Violations      int      `json:"violations"`
	AbortReason     string   `json:"abort_reason,omitempty"`
}

// FinishedResponse is sent for both completed and aborted runs. Saved is
// false when the result could not be handed to persistence.
type FinishedResponse struct {
	Event  Event         `json:"event"`
	Saved  bool          `json:"saved"`
	Notice string        `json:"notice,omitempty"`
	Result ResultPayload `json:"result"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
