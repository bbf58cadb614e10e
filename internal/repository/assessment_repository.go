package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
)

const assessmentColumns = `id, student_id, skill_label, categories, highest_level, level_label,
	accuracy_percent, total_questions, correct_answers, violations, aborted, abort_reason, completed_at`

// AssessmentRepository reads stored assessment results. Writes go through
// the assessment result worker.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new AssessmentRepository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

// Latest returns the most recent result of a student, or nil when there is none.
func (r *AssessmentRepository) Latest(ctx context.Context, studentID int) (*model.AssessmentResult, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+assessmentColumns+` FROM assessment_results
		 WHERE student_id = $1 ORDER BY completed_at DESC LIMIT 1`, studentID,
	)
	res, err := scanAssessment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return res, err
}

// ListPaginated returns a page of results, newest first, plus the total count.
func (r *AssessmentRepository) ListPaginated(ctx context.Context, studentID, limit, offset int) ([]model.AssessmentResult, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM assessment_results WHERE student_id = $1`, studentID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+assessmentColumns+` FROM assessment_results
		 WHERE student_id = $1 ORDER BY completed_at DESC LIMIT $2 OFFSET $3`,
		studentID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	results := make([]model.AssessmentResult, 0, limit)
	for rows.Next() {
		res, err := scanAssessment(rows)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, *res)
	}
	return results, total, rows.Err()
}

func scanAssessment(row pgx.Row) (*model.AssessmentResult, error) {
	a := &model.AssessmentResult{}
	err := row.Scan(
		&a.ID, &a.StudentID, &a.SkillLabel, &a.Categories, &a.HighestLevel, &a.LevelLabel,
		&a.AccuracyPercent, &a.TotalQuestions, &a.CorrectAnswers, &a.Violations, &a.Aborted,
		&a.AbortReason, &a.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}
