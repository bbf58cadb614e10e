package model

import (
	"time"

	"github.com/google/uuid"
)

// AssessmentResult is a stored skill assessment outcome.
type AssessmentResult struct {
	ID              uuid.UUID `json:"id"`
	StudentID       int       `json:"student_id"`
	SkillLabel      string    `json:"skill_label"`
	Categories      []string  `json:"categories"`
	HighestLevel    int       `json:"highest_level"`
	LevelLabel      string    `json:"level_label"`
	AccuracyPercent int       `json:"accuracy_percent"`
	TotalQuestions  int       `json:"total_questions"`
	CorrectAnswers  int       `json:"correct_answers"`
	Violations      int       `json:"violations"`
	Aborted         bool      `json:"aborted"`
	AbortReason     *string   `json:"abort_reason,omitempty"`
	CompletedAt     time.Time `json:"completed_at"`
}

// AssessmentHistoryQuery pages through past results.
type AssessmentHistoryQuery struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=50"`
}
