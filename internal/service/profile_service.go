package service

import (
	"context"
	"strings"

	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
	"github.com/pathfinder-edu/pathfinder-backend/internal/repository"
)

// ProfileService handles student profile logic.
type ProfileService struct {
	profileRepo *repository.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// Get returns the student's profile, or an empty one when none was saved.
func (s *ProfileService) Get(ctx context.Context, studentID int) (*model.Profile, error) {
	p, err := s.profileRepo.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &model.Profile{StudentID: studentID}
	}
	return p, nil
}

// Update saves the editable fields and returns the stored profile.
func (s *ProfileService) Update(ctx context.Context, studentID int, req *model.UpdateProfileRequest) (*model.Profile, error) {
	p := &model.Profile{
		StudentID:        studentID,
		FullName:         strings.TrimSpace(req.FullName),
		EnrollmentNumber: strings.TrimSpace(req.EnrollmentNumber),
		InstituteName:    strings.TrimSpace(req.InstituteName),
		CurrentSemester:  req.CurrentSemester,
		Branch:           strings.TrimSpace(req.Branch),
		Interests:        strings.TrimSpace(req.Interests),
		SelfRating:       req.SelfRating,
	}
	if err := s.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return s.Get(ctx, studentID)
}

// Interests returns the free-text skills saved on the profile.
func (s *ProfileService) Interests(ctx context.Context, studentID int) (string, error) {
	return s.profileRepo.GetInterests(ctx, studentID)
}
