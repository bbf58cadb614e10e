package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/mail"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/pathfinder-edu/pathfinder-backend/internal/config"
	"github.com/pathfinder-edu/pathfinder-backend/internal/database"
	"github.com/pathfinder-edu/pathfinder-backend/internal/logger"
	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
	"github.com/pathfinder-edu/pathfinder-backend/internal/repository"
	"github.com/pathfinder-edu/pathfinder-backend/internal/service"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Service ────────────────────────────────────────────
	// Redis is not needed to create an account, only to sign in.
	authService := service.NewAuthService(cfg, nil)
	studentService := service.NewStudentService(repository.NewStudentRepository(pool), authService)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Student Account ===")

	// Name
	fmt.Print("Enter Full Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		fmt.Println("Error: Name must be at least 2 characters")
		return
	}

	// Email
	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		fmt.Println("Error: Email is invalid")
		return
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	student, err := studentService.Register(ctx, &model.RegisterRequest{
		Email:    email,
		FullName: name,
		Password: password,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			fmt.Printf("Error: an account with email %s already exists\n", email)
			return
		}
		log.Fatal().Err(err).Msg("Failed to create student")
	}

	fmt.Printf("\nSuccess! Student '%s' (%s) created with ID: %d\n", student.FullName, student.Email, student.ID)
}
