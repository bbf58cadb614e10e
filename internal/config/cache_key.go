package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentSessionKey holds the JWT id of the student's latest login.
func (r *CacheKeyStruct) StudentSessionKey(studentID int) string {
	return fmt.Sprintf("login:%d", studentID)
}

// StudentActiveAssessmentKey marks the assessment run currently streaming for a student.
func (r *CacheKeyStruct) StudentActiveAssessmentKey(studentID int) string {
	return fmt.Sprintf("student:%d:active_assessment", studentID)
}

// ProctoringSessionKey holds the first-seen ip and device fingerprint of a proctoring session.
func (r *CacheKeyStruct) ProctoringSessionKey(studentID int, sessionID string) string {
	return fmt.Sprintf("student:%d:proctoring:%s", studentID, sessionID)
}

var CacheKey = NewCacheKeyStruct()
