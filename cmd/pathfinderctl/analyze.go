package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pathfinder-edu/pathfinder-backend/internal/analysis"
	"github.com/pathfinder-edu/pathfinder-backend/internal/assessment"
	"github.com/pathfinder-edu/pathfinder-backend/internal/catalog"
)

// marksFile is the YAML layout accepted by analyze:
//
//	- semester: 1
//	  subjects:
//	    - {subject: Web Technologies, grade: A+}
//	    - {subject: Mathematics, marks: 62}
type marksFile []struct {
	Semester int `yaml:"semester"`
	Subjects []struct {
		Subject string   `yaml:"subject"`
		Grade   string   `yaml:"grade"`
		Marks   *float64 `yaml:"marks"`
	} `yaml:"subjects"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <marks.yaml>",
	Short: "Compute the academic summary and domain recommendation for a marks file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		skills, _ := cmd.Flags().GetString("skills")
		accuracy, _ := cmd.Flags().GetInt("accuracy")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var file marksFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("parse marks: %w", err)
		}

		var marks []analysis.Mark
		for _, sem := range file {
			for _, s := range sem.Subjects {
				m := analysis.GradeToMarks(s.Grade)
				if s.Marks != nil {
					m = *s.Marks
				}
				marks = append(marks, analysis.Mark{Semester: sem.Semester, Subject: s.Subject, Marks: m})
			}
		}

		summary := analysis.Summarize(marks)
		if !summary.HasResults {
			return fmt.Errorf("no marks in %s", args[0])
		}
		fmt.Printf("CGPA %.2f over %d subjects in %d semester(s)\n\n", summary.CGPA, summary.TotalSubjects, summary.TotalSemesters)
		for _, s := range summary.SemesterScores {
			if s.HasData {
				fmt.Printf("semester %d  score %6.2f  sgpa %5.2f\n", s.Semester, s.Score, s.SGPA)
			}
		}

		var assessed analysis.Scores
		if skills != "" {
			assessed = analysis.AssessmentScores(assessment.ResolveSkills(skills), accuracy)
		}
		rec := analysis.Recommend(marks, assessed)

		fmt.Printf("\nrecommended: %s (confidence %.2f)\n", rec.RecommendedDomain, rec.Confidence)
		for i, d := range rec.TopDomains {
			fmt.Printf("  %d. %-22s %6.2f\n", i+1, d.Domain, d.Score)
		}
		fmt.Printf("strong: %s\n", strings.Join(rec.StrongSubjects, ", "))
		fmt.Printf("weak:   %s\n", strings.Join(rec.WeakAreas, ", "))

		cat, err := catalog.Load()
		if err != nil {
			return err
		}
		if r, ok := cat.RoadmapFor(rec.RecommendedKey); ok {
			fmt.Printf("\nroadmap: %s\n", r.Career)
			fmt.Printf("  foundation: %s\n", strings.Join(r.Stages.Foundation, ", "))
			fmt.Printf("  core:       %s\n", strings.Join(r.Stages.Core, ", "))
			fmt.Printf("  advanced:   %s\n", strings.Join(r.Stages.Advanced, ", "))
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("skills", "", "Assessed skills to blend in, comma separated")
	analyzeCmd.Flags().Int("accuracy", 0, "Accuracy of the assessment named by --skills")
}
