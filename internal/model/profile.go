package model

import "time"

// Profile is the academic profile of a student. The assessment fields are
// maintained by the assessment result worker and are read-only over the API.
type Profile struct {
	StudentID        int    `json:"student_id"`
	FullName         string `json:"full_name"`
	EnrollmentNumber string `json:"enrollment_number"`
	InstituteName    string `json:"institute_name"`
	CurrentSemester  *int   `json:"current_semester"`
	Branch           string `json:"branch"`
	Interests        string `json:"interests"`
	SelfRating       *int   `json:"self_rating"`

	AssessmentSkillLabel  *string    `json:"assessment_skill_label"`
	AssessmentLevel       *int       `json:"assessment_level"`
	AssessmentLevelLabel  *string    `json:"assessment_level_label"`
	AssessmentAccuracy    *int       `json:"assessment_accuracy"`
	AssessmentCompletedAt *time.Time `json:"assessment_completed_at"`

	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// UpdateProfileRequest is the payload for PUT /student/profile.
type UpdateProfileRequest struct {
	FullName         string `json:"full_name" binding:"required,min=2,max=100"`
	EnrollmentNumber string `json:"enrollment_number" binding:"omitempty,max=50"`
	InstituteName    string `json:"institute_name" binding:"omitempty,max=200"`
	CurrentSemester  *int   `json:"current_semester" binding:"omitempty,min=1,max=8"`
	Branch           string `json:"branch" binding:"omitempty,max=100"`
	Interests        string `json:"interests" binding:"omitempty,max=500"`
	SelfRating       *int   `json:"self_rating" binding:"omitempty,min=1,max=5"`
}
