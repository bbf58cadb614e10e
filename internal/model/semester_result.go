package model

import "time"

// SemesterResult is one subject mark of one semester.
type SemesterResult struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	Semester  int       `json:"semester"`
	Subject   string    `json:"subject"`
	Grade     string    `json:"grade"`
	Marks     float64   `json:"marks"`
	CreatedAt time.Time `json:"created_at"`
}

// SubjectMarkInput is one row of a manual marks entry. Marks defaults from the grade.
type SubjectMarkInput struct {
	Subject string   `json:"subject" binding:"required,min=1,max=120"`
	Grade   string   `json:"grade" binding:"required,grade"`
	Marks   *float64 `json:"marks" binding:"omitempty,min=0,max=100"`
}

// ManualMarksRequest replaces every subject of one semester.
type ManualMarksRequest struct {
	Semester int                `json:"semester" binding:"required,min=1,max=6"`
	Subjects []SubjectMarkInput `json:"subjects" binding:"required,min=1,max=20,dive"`
}
