package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
)

// SemesterResultRepository handles semester_results access.
type SemesterResultRepository struct {
	pool *pgxpool.Pool
}

// NewSemesterResultRepository creates a new SemesterResultRepository.
func NewSemesterResultRepository(pool *pgxpool.Pool) *SemesterResultRepository {
	return &SemesterResultRepository{pool: pool}
}

// ListByStudent returns every mark of a student ordered by semester and subject.
func (r *SemesterResultRepository) ListByStudent(ctx context.Context, studentID int) ([]model.SemesterResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, semester, subject, grade, marks, created_at
		 FROM semester_results WHERE student_id = $1
		 ORDER BY semester, subject`, studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]model.SemesterResult, 0)
	for rows.Next() {
		var sr model.SemesterResult
		if err := rows.Scan(&sr.ID, &sr.StudentID, &sr.Semester, &sr.Subject, &sr.Grade, &sr.Marks, &sr.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, sr)
	}
	return results, rows.Err()
}

// ReplaceSemester deletes a semester's rows and inserts the given ones in one transaction.
func (r *SemesterResultRepository) ReplaceSemester(ctx context.Context, studentID, semester int, results []model.SemesterResult) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM semester_results WHERE student_id = $1 AND semester = $2`,
		studentID, semester,
	); err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(results))
	for _, sr := range results {
		rows = append(rows, []interface{}{studentID, semester, sr.Subject, sr.Grade, sr.Marks})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"semester_results"},
		[]string{"student_id", "semester", "subject", "grade", "marks"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
