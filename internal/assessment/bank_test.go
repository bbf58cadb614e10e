package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultBank(t *testing.T) {
	bank, err := LoadDefaultBank()
	require.NoError(t, err)
	assert.Greater(t, bank.Len(), 0)

	for c, byDifficulty := range bank.Coverage() {
		for d, n := range byDifficulty {
			assert.Positivef(t, n, "%s at %s has no questions", c, d)
		}
	}

	q, ok := bank.Question("py-1")
	require.True(t, ok)
	assert.Equal(t, CategoryPython, q.Category)
	assert.Equal(t, DifficultyEasy, q.Difficulty)
	assert.Len(t, q.Options, OptionCount)
	assert.True(t, q.IsCorrect(1))
}

func TestParseBank_RejectsMissingBucket(t *testing.T) {
	_, err := ParseBank([]byte(`
- category: python
  levels:
    - difficulty: 1
      questions:
        - id: "only"
          prompt: "?"
          options: ["a", "b", "c", "d"]
          correct: 0
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "python: no questions at difficulty 2")
	assert.Contains(t, err.Error(), "java: no questions at difficulty 1")
}

func TestParseBank_RejectsBadQuestions(t *testing.T) {
	data := testBankYAML(1) + `
- category: python
  levels:
    - difficulty: 1
      questions:
        - id: "python-1-0"
          prompt: "dup"
          options: ["a", "b", "c", "d"]
          correct: 0
        - id: "three-options"
          prompt: "?"
          options: ["a", "b", "c"]
          correct: 0
        - id: "bad-index"
          prompt: "?"
          options: ["a", "b", "c", "d"]
          correct: 4
- category: rust
  levels: []
`
	_, err := ParseBank([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate question id "python-1-0"`)
	assert.Contains(t, err.Error(), `question "three-options": 3 options, want 4`)
	assert.Contains(t, err.Error(), `question "bad-index": correct index 4 out of range`)
	assert.Contains(t, err.Error(), `unknown category "rust"`)
}

func TestParseBank_InvalidYAML(t *testing.T) {
	_, err := ParseBank([]byte("category: [unterminated"))
	assert.Error(t, err)
}
