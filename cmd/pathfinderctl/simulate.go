package main

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pathfinder-edu/pathfinder-backend/internal/assessment"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <skills>",
	Short: "Run an assessment offline with a scripted answer pattern",
	Long: "Runs one assessment against the bank. --answers is a pattern of c (correct) and w (wrong)\n" +
		"per round, e.g. ccwcc. Rounds beyond the pattern repeat its last letter.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern, _ := cmd.Flags().GetString("answers")
		seed, _ := cmd.Flags().GetUint64("seed")
		violations, _ := cmd.Flags().GetInt("violations")

		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "" || strings.Trim(pattern, "cw") != "" {
			return fmt.Errorf("--answers must only contain c and w")
		}

		bank, err := loadBank(cmd)
		if err != nil {
			return err
		}

		cfg := assessment.DefaultConfig()
		selector := assessment.NewSelector(bank, rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		session := assessment.NewSession(selector, cfg)
		defer session.Close()

		q, err := session.Start(strings.Join(args, ","))
		if err != nil {
			return err
		}

		at := time.Now()
		for i := 0; i < violations && session.State() == assessment.StateInProgress; i++ {
			at = at.Add(cfg.Debounce + time.Second)
			obs, err := session.Observe(assessment.Signal{Kind: assessment.SignalVisibilityHidden, At: at})
			if err != nil {
				return err
			}
			fmt.Printf("signal %s: %s (%d/%d)\n", assessment.SignalVisibilityHidden, obs.Verdict, obs.Violations, cfg.MaxViolations)
		}

		for session.State() == assessment.StateInProgress {
			round := session.Round()
			want := pattern[min(round-1, len(pattern)-1)] == 'c'
			choice := pickChoice(q, want)

			step, err := session.Answer(choice)
			if err != nil {
				return err
			}
			mark := "wrong"
			if step.Correct {
				mark = "correct"
			}
			fmt.Printf("round %d  %-6s  %-8s  %s\n", step.Round, step.Difficulty, mark, q.ID)
			if step.Next != nil {
				q = *step.Next
			}
		}

		r, ok := session.Result()
		if !ok {
			return fmt.Errorf("session ended without a result")
		}
		printResult(r)
		return nil
	},
}

func init() {
	simulateCmd.Flags().String("answers", "ccccc", "Answer pattern, c for correct and w for wrong")
	simulateCmd.Flags().Uint64("seed", 1, "Question selection seed")
	simulateCmd.Flags().Int("violations", 0, "Integrity violations to report before answering")
}

func pickChoice(q assessment.Question, correct bool) int {
	if correct {
		return q.CorrectIndex
	}
	return (q.CorrectIndex + 1) % len(q.Options)
}

func printResult(r assessment.Result) {
	fmt.Println(strings.Repeat("─", 40))
	fmt.Printf("skills:     %s\n", r.SkillLabel)
	fmt.Printf("level:      %s (%s)\n", r.Level.Label, r.HighestLevel)
	fmt.Printf("accuracy:   %d%% (%d/%d)\n", r.Accuracy, r.CorrectAnswers, r.TotalQuestions)
	fmt.Printf("violations: %d\n", r.Violations)
	if r.Aborted() {
		fmt.Printf("aborted:    %s\n", r.AbortReason)
	}
}
