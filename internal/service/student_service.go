package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
	"github.com/pathfinder-edu/pathfinder-backend/internal/repository"
)

// ErrStudentNotFound is returned when no account matches.
var ErrStudentNotFound = errors.New("student not found")

// StudentService handles account business logic.
type StudentService struct {
	studentRepo *repository.StudentRepository
	auth        *AuthService
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo *repository.StudentRepository, auth *AuthService) *StudentService {
	return &StudentService{studentRepo: studentRepo, auth: auth}
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	st, err := s.studentRepo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStudentNotFound
	}
	return st, err
}

// Register creates an account. It returns repository.ErrDuplicateEmail when
// the email is taken.
func (s *StudentService) Register(ctx context.Context, req *model.RegisterRequest) (*model.Student, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	st := &model.Student{
		Email:        req.Email,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: hash,
	}
	if err := s.studentRepo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Authenticate checks credentials. Unknown emails and wrong passwords both
// return ErrInvalidCredentials.
func (s *StudentService) Authenticate(ctx context.Context, email, password string) (*model.Student, error) {
	st, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.auth.CheckPassword(st.PasswordHash, password); err != nil {
		return nil, err
	}
	return st, nil
}
