package analysis

import (
	"math"
	"sort"
	"strings"
)

// TrackedSemesters is the number of semesters reported in a summary.
const TrackedSemesters = 6

// Mark is one subject result of one semester, on a 0-100 scale.
type Mark struct {
	Semester int
	Subject  string
	Marks    float64
}

var gradeMarks = map[string]float64{
	"O":  95,
	"A+": 85,
	"A":  75,
	"B+": 65,
	"B":  55,
	"P":  45,
	"F":  30,
}

// DefaultGradeMarks is used for a grade letter outside the known scale.
const DefaultGradeMarks = 50

// GradeToMarks converts a grade letter to representative marks.
func GradeToMarks(grade string) float64 {
	if m, ok := gradeMarks[strings.ToUpper(strings.TrimSpace(grade))]; ok {
		return m
	}
	return DefaultGradeMarks
}

// MarksToGrade converts marks to a grade letter.
func MarksToGrade(marks float64) string {
	switch {
	case marks >= 90:
		return "O"
	case marks >= 80:
		return "A+"
	case marks >= 70:
		return "A"
	case marks >= 60:
		return "B+"
	case marks >= 50:
		return "B"
	case marks >= 40:
		return "P"
	default:
		return "F"
	}
}

// SubjectScore is a graded subject inside a semester breakdown.
type SubjectScore struct {
	Subject string  `json:"subject"`
	Marks   float64 `json:"marks"`
	Grade   string  `json:"grade"`
}

// SemesterScore is the average of one semester.
type SemesterScore struct {
	Semester int            `json:"semester"`
	Score    float64        `json:"score"`
	SGPA     float64        `json:"sgpa"`
	Subjects []SubjectScore `json:"subjects"`
	HasData  bool           `json:"has_data"`
}

// Summary is the academic overview of one student.
type Summary struct {
	HasResults        bool            `json:"has_results"`
	CGPA              float64         `json:"cgpa"`
	SemestersUploaded []int           `json:"semesters_uploaded"`
	TotalSemesters    int             `json:"total_semesters"`
	SemesterScores    []SemesterScore `json:"semester_scores"`
	TotalSubjects     int             `json:"total_subjects"`
}

// Summarize computes CGPA and the per-semester breakdown. Marks are expected
// ordered by semester then subject.
func Summarize(marks []Mark) Summary {
	if len(marks) == 0 {
		return Summary{SemestersUploaded: []int{}, SemesterScores: []SemesterScore{}}
	}

	type acc struct {
		subjects []SubjectScore
		total    float64
	}
	bySemester := make(map[int]*acc)
	var total float64
	for _, m := range marks {
		total += m.Marks
		a, ok := bySemester[m.Semester]
		if !ok {
			a = &acc{}
			bySemester[m.Semester] = a
		}
		a.subjects = append(a.subjects, SubjectScore{Subject: m.Subject, Marks: m.Marks, Grade: MarksToGrade(m.Marks)})
		a.total += m.Marks
	}

	uploaded := make([]int, 0, len(bySemester))
	for sem := range bySemester {
		uploaded = append(uploaded, sem)
	}
	sort.Ints(uploaded)

	scores := make([]SemesterScore, 0, TrackedSemesters)
	for sem := 1; sem <= TrackedSemesters; sem++ {
		a, ok := bySemester[sem]
		if !ok {
			scores = append(scores, SemesterScore{Semester: sem, Subjects: []SubjectScore{}})
			continue
		}
		avg := a.total / float64(len(a.subjects))
		scores = append(scores, SemesterScore{
			Semester: sem,
			Score:    Round2(avg),
			SGPA:     Round2(avg / 100 * 10),
			Subjects: a.subjects,
			HasData:  true,
		})
	}

	return Summary{
		HasResults:        true,
		CGPA:              Round2(total / (float64(len(marks)) * 100) * 10),
		SemestersUploaded: uploaded,
		TotalSemesters:    len(uploaded),
		SemesterScores:    scores,
		TotalSubjects:     len(marks),
	}
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
