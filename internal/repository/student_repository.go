package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
)

var ErrDuplicateEmail = errors.New("student with this email already exists")

const studentColumns = `id, email, full_name, password_hash, created_at, updated_at`

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.Email, &s.FullName, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByEmail retrieves a student by email, case-insensitively.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE email = $1`, normalizeEmail(email),
	).Scan(&s.ID, &s.Email, &s.FullName, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new student and an empty profile carrying the name.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	s.Email = normalizeEmail(s.Email)
	err = tx.QueryRow(ctx,
		`INSERT INTO students (email, full_name, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		s.Email, s.FullName, s.PasswordHash,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO student_profiles (student_id, full_name) VALUES ($1, $2)`,
		s.ID, s.FullName,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdatePassword updates a student's password hash.
func (r *StudentRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		passwordHash, id,
	)
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
