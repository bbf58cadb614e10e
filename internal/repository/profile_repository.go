package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
)

// ProfileRepository handles student_profiles access.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Get returns the profile of a student, or nil when none exists.
func (r *ProfileRepository) Get(ctx context.Context, studentID int) (*model.Profile, error) {
	p := &model.Profile{}
	err := r.pool.QueryRow(ctx,
		`SELECT student_id, full_name, enrollment_number, institute_name, current_semester,
		        branch, interests, self_rating,
		        assessment_skill_label, assessment_level, assessment_level_label,
		        assessment_accuracy, assessment_completed_at, updated_at
		 FROM student_profiles WHERE student_id = $1`, studentID,
	).Scan(
		&p.StudentID, &p.FullName, &p.EnrollmentNumber, &p.InstituteName, &p.CurrentSemester,
		&p.Branch, &p.Interests, &p.SelfRating,
		&p.AssessmentSkillLabel, &p.AssessmentLevel, &p.AssessmentLevelLabel,
		&p.AssessmentAccuracy, &p.AssessmentCompletedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// Upsert writes the editable profile fields. Assessment columns are left untouched.
func (r *ProfileRepository) Upsert(ctx context.Context, p *model.Profile) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO student_profiles
		    (student_id, full_name, enrollment_number, institute_name, current_semester, branch, interests, self_rating)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (student_id) DO UPDATE SET
		    full_name = EXCLUDED.full_name,
		    enrollment_number = EXCLUDED.enrollment_number,
		    institute_name = EXCLUDED.institute_name,
		    current_semester = EXCLUDED.current_semester,
		    branch = EXCLUDED.branch,
		    interests = EXCLUDED.interests,
		    self_rating = EXCLUDED.self_rating,
		    updated_at = CURRENT_TIMESTAMP
		 RETURNING updated_at`,
		p.StudentID, p.FullName, p.EnrollmentNumber, p.InstituteName, p.CurrentSemester,
		p.Branch, p.Interests, p.SelfRating,
	).Scan(&p.UpdatedAt)
}

// GetInterests returns the free-text skills of a student, or "" when unset.
func (r *ProfileRepository) GetInterests(ctx context.Context, studentID int) (string, error) {
	var interests string
	err := r.pool.QueryRow(ctx,
		`SELECT interests FROM student_profiles WHERE student_id = $1`, studentID,
	).Scan(&interests)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return interests, err
}
