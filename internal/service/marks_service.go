package service

import (
	"context"
	"strings"

	"github.com/pathfinder-edu/pathfinder-backend/internal/analysis"
	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
	"github.com/pathfinder-edu/pathfinder-backend/internal/repository"
)

// MarksService handles manual grade entry.
type MarksService struct {
	resultRepo *repository.SemesterResultRepository
}

// NewMarksService creates a new MarksService.
func NewMarksService(resultRepo *repository.SemesterResultRepository) *MarksService {
	return &MarksService{resultRepo: resultRepo}
}

// ReplaceSemester stores the subjects of one semester, replacing what was there.
func (s *MarksService) ReplaceSemester(ctx context.Context, studentID int, req *model.ManualMarksRequest) ([]model.SemesterResult, error) {
	results := BuildSemesterResults(studentID, req)
	if err := s.resultRepo.ReplaceSemester(ctx, studentID, req.Semester, results); err != nil {
		return nil, err
	}
	return results, nil
}

// List returns every stored mark of a student.
func (s *MarksService) List(ctx context.Context, studentID int) ([]model.SemesterResult, error) {
	return s.resultRepo.ListByStudent(ctx, studentID)
}

// BuildSemesterResults normalises a manual entry. Explicit marks win over the
// grade's default marks; the grade letter is upper-cased.
func BuildSemesterResults(studentID int, req *model.ManualMarksRequest) []model.SemesterResult {
	results := make([]model.SemesterResult, 0, len(req.Subjects))
	for _, sub := range req.Subjects {
		grade := strings.ToUpper(strings.TrimSpace(sub.Grade))
		marks := analysis.GradeToMarks(grade)
		if sub.Marks != nil {
			marks = *sub.Marks
		}
		results = append(results, model.SemesterResult{
			StudentID: studentID,
			Semester:  req.Semester,
			Subject:   strings.TrimSpace(sub.Subject),
			Grade:     grade,
			Marks:     marks,
		})
	}
	return results
}
