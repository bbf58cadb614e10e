package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectorPick_PrefersTargetDifficulty(t *testing.T) {
	sel := newTestSelector(t, 2)
	cats := []Category{CategoryJava, CategoryPython}

	for i := 0; i < 20; i++ {
		q := sel.Pick(cats, DifficultyMedium, nil)
		assert.Equal(t, DifficultyMedium, q.Difficulty)
		assert.Contains(t, cats, q.Category)
	}
}

func TestSelectorPick_FallsBackToAnyUnusedDifficulty(t *testing.T) {
	sel := newTestSelector(t, 1)
	cats := []Category{CategoryC}
	exclude := map[string]struct{}{"c-3-0": {}}

	q := sel.Pick(cats, DifficultyHard, exclude)
	assert.Equal(t, CategoryC, q.Category)
	assert.NotEqual(t, "c-3-0", q.ID)
	assert.NotEqual(t, DifficultyHard, q.Difficulty)
}

func TestSelectorPick_RepeatsWhenEverythingUsed(t *testing.T) {
	sel := newTestSelector(t, 1)
	cats := []Category{CategoryIoT}
	exclude := map[string]struct{}{"iot-1-0": {}, "iot-2-0": {}, "iot-3-0": {}}

	q := sel.Pick(cats, DifficultyEasy, exclude)
	assert.Equal(t, "iot-1-0", q.ID)
}

func TestSelectorPick_NeverReturnsExcludedWhileUnusedRemain(t *testing.T) {
	sel := newTestSelector(t, 3)
	cats := []Category{CategoryWebDevelopment}
	used := map[string]struct{}{}

	for i := 0; i < 9; i++ {
		q := sel.Pick(cats, DifficultyMedium, used)
		_, seen := used[q.ID]
		assert.Falsef(t, seen, "question %s repeated on pick %d", q.ID, i)
		used[q.ID] = struct{}{}
	}
}
