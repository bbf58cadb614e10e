package service

import (
	"context"

	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
	"github.com/pathfinder-edu/pathfinder-backend/internal/repository"
	"github.com/pathfinder-edu/pathfinder-backend/internal/response"
)

const (
	defaultHistoryPerPage = 10
	maxHistoryPerPage     = 50
)

// HistoryService lists stored assessment results.
type HistoryService struct {
	assessmentRepo *repository.AssessmentRepository
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(assessmentRepo *repository.AssessmentRepository) *HistoryService {
	return &HistoryService{assessmentRepo: assessmentRepo}
}

// List returns a page of results, newest first.
func (s *HistoryService) List(ctx context.Context, studentID, page, perPage int) ([]model.AssessmentResult, *response.Pagination, error) {
	page, perPage = normalizePage(page, perPage)

	results, total, err := s.assessmentRepo.ListPaginated(ctx, studentID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	return results, response.NewPagination(page, perPage, total), nil
}

// Latest returns the most recent result, or nil.
func (s *HistoryService) Latest(ctx context.Context, studentID int) (*model.AssessmentResult, error) {
	return s.assessmentRepo.Latest(ctx, studentID)
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultHistoryPerPage
	}
	if perPage > maxHistoryPerPage {
		perPage = maxHistoryPerPage
	}
	return page, perPage
}
