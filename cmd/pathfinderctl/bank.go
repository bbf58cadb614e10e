package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pathfinder-edu/pathfinder-backend/internal/assessment"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect the question bank",
}

var bankCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the bank and print questions per category and difficulty",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := loadBank(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("%-22s  %6s  %6s  %6s\n", "Category", "Easy", "Medium", "Hard")
		fmt.Println(strings.Repeat("─", 46))

		var empty []string
		coverage := bank.Coverage()
		for _, c := range assessment.Categories {
			row := coverage[c]
			fmt.Printf("%-22s  %6d  %6d  %6d\n", c.Label(),
				row[assessment.DifficultyEasy], row[assessment.DifficultyMedium], row[assessment.DifficultyHard])
			for _, d := range assessment.Difficulties {
				if row[d] == 0 {
					empty = append(empty, fmt.Sprintf("%s/%s", c, d))
				}
			}
		}

		fmt.Printf("\n%d questions\n", bank.Len())
		if len(empty) > 0 {
			fmt.Printf("empty buckets (served by fallback): %s\n", strings.Join(empty, ", "))
		}
		return nil
	},
}

func init() {
	bankCmd.AddCommand(bankCheckCmd)
}

func loadBank(cmd *cobra.Command) (*assessment.Bank, error) {
	path, _ := cmd.Flags().GetString("bank")
	bank, err := assessment.LoadBank(path)
	if err != nil {
		return nil, fmt.Errorf("load bank: %w", err)
	}
	return bank, nil
}
