package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pathfinder-edu/pathfinder-backend/internal/analysis"
	"github.com/pathfinder-edu/pathfinder-backend/internal/config"
	"github.com/pathfinder-edu/pathfinder-backend/internal/database"
	"github.com/pathfinder-edu/pathfinder-backend/internal/logger"
	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
	"github.com/pathfinder-edu/pathfinder-backend/internal/repository"
	"github.com/pathfinder-edu/pathfinder-backend/internal/service"
)

// curriculum lists demo subjects per semester.
var curriculum = map[int][]string{
	1: {"Programming in C", "Mathematics I", "Digital Logic", "Communication Skills"},
	2: {"Object Oriented Programming with Java", "Mathematics II", "Data Structures", "Web Technologies"},
	3: {"Database Management Systems", "Operating Systems", "Statistics for Data Analytics", "Computer Networks"},
	4: {"Machine Learning", "Software Engineering", "Network Security", "Mobile Application Development"},
	5: {"Cloud Computing and DevOps", "Artificial Intelligence", "Embedded Systems and IoT", "Compiler Design"},
	6: {"Deep Learning", "Big Data Analytics", "Ethical Hacking", "Game Development with Unity"},
}

var grades = []string{"O", "A+", "A", "B+", "B", "P"}

var names = []string{
	"Aarav Mehta", "Diya Sharma", "Kabir Rao", "Ananya Iyer", "Vihaan Gupta",
	"Ishita Nair", "Arjun Patel", "Meera Joshi", "Rohan Das", "Sara Khan",
}

func main() {
	count := flag.Int("n", len(names), "number of demo students (max 10)")
	semesters := flag.Int("semesters", 4, "semesters of marks per student (1-6)")
	password := flag.String("password", "pathfinder123", "password for every demo account")
	flag.Parse()

	if *count > len(names) {
		*count = len(names)
	}
	if *semesters < 1 || *semesters > analysis.TrackedSemesters {
		*semesters = 4
	}

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	studentService := service.NewStudentService(repository.NewStudentRepository(pool), service.NewAuthService(cfg, nil))
	marksService := service.NewMarksService(repository.NewSemesterResultRepository(pool))

	fmt.Printf("=== Seeding %d Students ===\n", *count)

	rng := rand.New(rand.NewPCG(42, 2024))
	successCount := 0
	for i := 0; i < *count; i++ {
		student, err := studentService.Register(ctx, &model.RegisterRequest{
			Email:    fmt.Sprintf("student%d@pathfinder.dev", i+1),
			FullName: names[i],
			Password: *password,
		})
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				fmt.Printf("Skipping %s: already seeded\n", names[i])
				continue
			}
			fmt.Printf("Error creating student %s: %v\n", names[i], err)
			continue
		}

		for sem := 1; sem <= *semesters; sem++ {
			req := &model.ManualMarksRequest{Semester: sem}
			for _, subject := range curriculum[sem] {
				req.Subjects = append(req.Subjects, model.SubjectMarkInput{
					Subject: subject,
					Grade:   grades[rng.IntN(len(grades))],
				})
			}
			if _, err := marksService.ReplaceSemester(ctx, student.ID, req); err != nil {
				fmt.Printf("Error seeding semester %d for %s: %v\n", sem, student.FullName, err)
			}
		}
		successCount++
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, *count)
}
