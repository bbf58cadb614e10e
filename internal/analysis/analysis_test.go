package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathfinder-edu/pathfinder-backend/internal/assessment"
)

func sampleMarks() []Mark {
	return []Mark{
		{Semester: 1, Subject: "Web Technologies", Marks: 90},
		{Semester: 1, Subject: "Database Management Systems", Marks: 70},
		{Semester: 2, Subject: "Machine Learning", Marks: 80},
		{Semester: 2, Subject: "Mathematics", Marks: 40},
		{Semester: 2, Subject: "Network Security", Marks: 60},
	}
}

func TestGradeConversions(t *testing.T) {
	tests := []struct {
		grade string
		marks float64
	}{
		{"O", 95}, {"A+", 85}, {"a", 75}, {"B+", 65}, {"B", 55}, {"P", 45}, {"F", 30}, {"X", DefaultGradeMarks},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.marks, GradeToMarks(tt.grade), tt.grade)
	}

	assert.Equal(t, "O", MarksToGrade(90))
	assert.Equal(t, "A+", MarksToGrade(89.9))
	assert.Equal(t, "B", MarksToGrade(50))
	assert.Equal(t, "P", MarksToGrade(40))
	assert.Equal(t, "F", MarksToGrade(39))
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleMarks())

	assert.True(t, s.HasResults)
	assert.Equal(t, 6.8, s.CGPA)
	assert.Equal(t, []int{1, 2}, s.SemestersUploaded)
	assert.Equal(t, 2, s.TotalSemesters)
	assert.Equal(t, 5, s.TotalSubjects)
	require.Len(t, s.SemesterScores, TrackedSemesters)

	assert.Equal(t, 80.0, s.SemesterScores[0].Score)
	assert.Equal(t, 8.0, s.SemesterScores[0].SGPA)
	assert.Equal(t, "O", s.SemesterScores[0].Subjects[0].Grade)
	assert.Equal(t, 6.0, s.SemesterScores[1].SGPA)
	assert.False(t, s.SemesterScores[2].HasData)
	assert.Empty(t, s.SemesterScores[5].Subjects)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.False(t, s.HasResults)
	assert.Empty(t, s.SemesterScores)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		subject string
		want    Domain
		ok      bool
	}{
		{"Web Technologies", DomainFrontend, true},
		{"Database Management Systems", DomainBackend, true},
		{"Machine Learning", DomainAIML, true},
		{"Network Security", DomainCybersecurity, true},
		{"Embedded Systems", DomainIoT, true},
		{"Ethereum Smart Contracts", DomainBlockchain, true},
		{"Mathematics", "", false},
	}
	for _, tt := range tests {
		got, ok := Classify(tt.subject)
		assert.Equal(t, tt.ok, ok, tt.subject)
		assert.Equal(t, tt.want, got, tt.subject)
	}
}

func TestRecommend_MarksOnly(t *testing.T) {
	rec := Recommend(sampleMarks(), nil)

	assert.Equal(t, DomainFrontend, rec.RecommendedKey)
	assert.Equal(t, "Frontend Development", rec.RecommendedDomain)
	assert.Equal(t, 90.0, rec.Confidence)
	require.Len(t, rec.TopDomains, 3)
	assert.Equal(t, DomainAIML, rec.TopDomains[1].Key)
	assert.Equal(t, DomainBackend, rec.TopDomains[2].Key)
	assert.Equal(t, []string{"Mathematics", "Network Security", "Database Management Systems"}, rec.WeakAreas)
	assert.Equal(t, []string{"Web Technologies", "Machine Learning", "Database Management Systems"}, rec.StrongSubjects)
	assert.False(t, rec.PredictionSignals.UsedAssessmentAnswers)
}

func TestRecommend_BlendsAssessment(t *testing.T) {
	assessed := AssessmentScores([]assessment.Category{assessment.CategoryPython}, 100)
	rec := Recommend(sampleMarks(), assessed)

	assert.True(t, rec.PredictionSignals.UsedAssessmentAnswers)
	assert.Equal(t, DomainAIML, rec.RecommendedKey)
	assert.Equal(t, 86.0, rec.Confidence)
	require.Len(t, rec.TopDomains, 3)
	assert.Equal(t, DomainBackend, rec.TopDomains[1].Key)
	assert.Equal(t, 79.0, rec.TopDomains[1].Score)
	assert.Equal(t, DomainFrontend, rec.TopDomains[2].Key)
}

func TestRecommend_Fallback(t *testing.T) {
	rec := Recommend([]Mark{{Semester: 1, Subject: "Mathematics", Marks: 70}}, nil)

	assert.Equal(t, FallbackDomain, rec.RecommendedDomain)
	assert.Empty(t, rec.RecommendedKey)
	assert.Zero(t, rec.Confidence)
	assert.Empty(t, rec.TopDomains)
}

func TestAssessmentScores(t *testing.T) {
	s := AssessmentScores([]assessment.Category{assessment.CategoryCPP, assessment.CategoryC}, 60)
	assert.Equal(t, 60.0, s[DomainGameDev])
	assert.Equal(t, 60.0, s[DomainIoT])
	assert.Zero(t, s[DomainFrontend])

	assert.False(t, AssessmentScores(nil, 80).Any())
	assert.Equal(t, 100.0, Scores{DomainIoT: 140, DomainGameDev: -3}.Normalize()[DomainIoT])
}
