package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pathfinder-edu/pathfinder-backend/internal/assessment"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Inspect skill resolution",
}

var skillResolveCmd = &cobra.Command{
	Use:   "resolve <skills>",
	Short: "Show the question category each comma-separated skill maps to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names := assessment.ParseSkills(strings.Join(args, ","))
		if len(names) == 0 {
			return assessment.ErrNoSkills
		}

		for _, name := range names {
			fmt.Printf("%-30s  %s\n", name, assessment.ResolveSkill(name))
		}

		categories := assessment.ResolveSkills(strings.Join(names, ","))
		labels := make([]string, 0, len(categories))
		for _, c := range categories {
			labels = append(labels, c.Label())
		}
		fmt.Printf("\nquestion pool: %s\n", strings.Join(labels, ", "))
		return nil
	},
}

func init() {
	skillCmd.AddCommand(skillResolveCmd)
}
