package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathfinder-edu/pathfinder-backend/internal/analysis"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Web Development", "AI/ML", "Cybersecurity", "Data Science",
		"Mobile Development", "DevOps", "Backend Development", "Blockchain",
	}, c.Domains())
}

func TestResourcesFilter(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	all := c.Resources("", "")
	assert.Len(t, all, 8)

	web := c.Resources("web development", "")
	require.Len(t, web, 1)
	assert.Len(t, web[0].Courses, 3)

	byInstructor := c.Resources("", "colt steele")
	require.NotEmpty(t, byInstructor)
	for _, g := range byInstructor {
		for _, course := range g.Courses {
			assert.Contains(t, course.Instructor, "Colt Steele")
		}
	}

	assert.Empty(t, c.Resources("Web Development", "no such course"))
}

func TestRoadmapFor(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	r, ok := c.RoadmapFor(analysis.DomainDataScience)
	require.True(t, ok)
	assert.Equal(t, "AI / Data Science", r.Career)
	assert.Equal(t, []string{"Python Programming", "Mathematics for ML", "Statistics & Probability"}, r.Stages.Foundation)

	r, ok = c.RoadmapFor(analysis.DomainFrontend)
	require.True(t, ok)
	assert.Equal(t, "Web Development", r.Career)

	_, ok = c.RoadmapFor(analysis.DomainGameDev)
	assert.False(t, ok)
}

func TestResourcesFor(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	g, ok := c.ResourcesFor(analysis.DomainBackend)
	require.True(t, ok)
	assert.Equal(t, "Backend Development", g.Domain)

	_, ok = c.ResourcesFor(analysis.DomainIoT)
	assert.False(t, ok)
}

func TestParse_RejectsUnknownKey(t *testing.T) {
	_, err := Parse([]byte("- domain: X\n  keys: [quantum]\n  courses: []\n"), []byte("[]"))
	assert.Error(t, err)
}
