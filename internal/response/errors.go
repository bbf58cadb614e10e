package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrEmailTaken         ErrCode = "EMAIL_TAKEN"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Assessment ────────────────────────────────────────────────────
	ErrNoSkills            ErrCode = "NO_SKILLS"
	ErrNoAnswer            ErrCode = "NO_ANSWER"
	ErrInvalidOption       ErrCode = "INVALID_OPTION"
	ErrAssessmentNotActive ErrCode = "ASSESSMENT_NOT_ACTIVE"
	ErrAssessmentStarted   ErrCode = "ASSESSMENT_ALREADY_STARTED"
	ErrAssessmentRunning   ErrCode = "ASSESSMENT_RUNNING_ELSEWHERE"

	// ─── Guidance ──────────────────────────────────────────────────────
	ErrNoResults          ErrCode = "NO_RESULTS"
	ErrRoadmapUnavailable ErrCode = "ROADMAP_UNAVAILABLE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal    ErrCode = "INTERNAL_ERROR"
	ErrUnavailable ErrCode = "SERVICE_UNAVAILABLE"
)

var messages = map[ErrCode]string{
	ErrInvalidCredentials: "Email or password is incorrect.",
	ErrEmailTaken:         "An account with this email already exists.",
	ErrSessionInvalidated: "Your session has ended because you signed in elsewhere. Please sign in again.",
	ErrTokenRequired:      "Authentication token is required.",
	ErrTokenInvalid:       "Authentication token is invalid.",
	ErrTokenExpired:       "Authentication token has expired.",

	ErrValidation:     "Validation failed. Please check your input.",
	ErrInvalidPayload: "Request payload is invalid.",

	ErrNotFound: "Resource not found.",

	ErrNoSkills:            "Enter at least one skill to start the assessment.",
	ErrNoAnswer:            "Select an option before continuing.",
	ErrInvalidOption:       "Selected option is out of range.",
	ErrAssessmentNotActive: "No assessment is in progress.",
	ErrAssessmentStarted:   "The assessment has already started.",
	ErrAssessmentRunning:   "An assessment is already running in another window.",

	ErrNoResults:          "No results uploaded yet.",
	ErrRoadmapUnavailable: "Roadmap not available for this domain.",

	ErrRateLimitExceeded: "Too many requests. Please try again later.",

	ErrInternal:    "An internal server error occurred.",
	ErrUnavailable: "Service is temporarily unavailable.",
}

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return "An unexpected error occurred."
}
