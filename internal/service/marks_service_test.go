package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
)

func TestBuildSemesterResults(t *testing.T) {
	explicit := 88.5
	req := &model.ManualMarksRequest{
		Semester: 3,
		Subjects: []model.SubjectMarkInput{
			{Subject: " Operating Systems ", Grade: "a+"},
			{Subject: "Compiler Design", Grade: "B", Marks: &explicit},
			{Subject: "Ethics", Grade: "P"},
		},
	}

	got := BuildSemesterResults(11, req)
	require.Len(t, got, 3)

	assert.Equal(t, model.SemesterResult{StudentID: 11, Semester: 3, Subject: "Operating Systems", Grade: "A+", Marks: 85}, got[0])
	assert.Equal(t, 88.5, got[1].Marks)
	assert.Equal(t, "B", got[1].Grade)
	assert.Equal(t, 45.0, got[2].Marks)
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, perPage         int
		wantPage, wantPerPage int
	}{
		{0, 0, 1, defaultHistoryPerPage},
		{3, 20, 3, 20},
		{-2, 500, 1, maxHistoryPerPage},
	}
	for _, tt := range tests {
		p, pp := normalizePage(tt.page, tt.perPage)
		assert.Equal(t, tt.wantPage, p)
		assert.Equal(t, tt.wantPerPage, pp)
	}
}
