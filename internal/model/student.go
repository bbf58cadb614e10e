package model

import "time"

// Student is a registered account.
type Student struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginRequest is the payload for student authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// AuthResponse is returned after a successful login or registration.
type AuthResponse struct {
	Token   string  `json:"token"`
	Student Student `json:"student"`
}
