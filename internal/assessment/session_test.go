package assessment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_StartRequiresSkills(t *testing.T) {
	s := newTestSession(t)

	_, err := s.Start(" , ; ")
	assert.ErrorIs(t, err, ErrNoSkills)
	assert.Equal(t, StateNotStarted, s.State())
}

func TestSession_StartInitialisesRoundOne(t *testing.T) {
	s := newTestSession(t)

	q, err := s.Start("Java, Python")
	require.NoError(t, err)
	assert.Equal(t, StateInProgress, s.State())
	assert.Equal(t, 1, s.Round())
	assert.Equal(t, DifficultyMedium, s.Difficulty())
	assert.Equal(t, DifficultyEasy, s.HighestLevel())
	assert.Equal(t, DifficultyMedium, q.Difficulty)
	assert.Contains(t, []Category{CategoryJava, CategoryPython}, q.Category)

	_, err = s.Start("C")
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestSession_AllCorrect(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Start("Java, Python")
	require.NoError(t, err)

	wantDifficulty := []Difficulty{DifficultyMedium, DifficultyHard, DifficultyHard, DifficultyHard, DifficultyHard}
	var step Step
	for round := 1; round <= 5; round++ {
		assert.Equal(t, wantDifficulty[round-1], s.Difficulty(), "round %d", round)
		step, err = s.Answer(s.Current().CorrectIndex)
		require.NoError(t, err)
		assert.True(t, step.Correct)
	}

	require.NotNil(t, step.Result)
	assert.Nil(t, step.Next)
	assert.Equal(t, StateCompleted, s.State())
	assert.Equal(t, DifficultyHard, step.Result.HighestLevel)
	assert.Equal(t, LevelAdvanced, step.Result.Level.Value)
	assert.Equal(t, 5, step.Result.CorrectAnswers)
	assert.Equal(t, 100, step.Result.Accuracy)
	assert.Equal(t, 5, step.Result.TotalQuestions)
	assert.Equal(t, "Java, Python", step.Result.SkillLabel)
	assert.False(t, step.Result.Aborted())
}

func TestSession_AllWrong(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Start("Rust")
	require.NoError(t, err)

	for round := 1; round <= 5; round++ {
		_, err = s.Answer(wrongChoice(s.Current()))
		require.NoError(t, err)
	}

	r, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, DifficultyEasy, r.HighestLevel)
	assert.Equal(t, LevelFoundation, r.Level.Value)
	assert.Equal(t, 0, r.Accuracy)
	assert.Equal(t, []Category{CategoryGeneralProgramming}, r.Categories)
}

func TestSession_HighestTracksDifficultyAtCorrectAnswer(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Start("C")
	require.NoError(t, err)

	// wrong at 2 -> 1, correct at 1 -> 2, correct at 2 -> 3, wrong at 3 -> 2, correct at 2
	plan := []bool{false, true, true, false, true}
	prevHighest := s.HighestLevel()
	for _, correct := range plan {
		choice := wrongChoice(s.Current())
		if correct {
			choice = s.Current().CorrectIndex
		}
		_, err = s.Answer(choice)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, s.HighestLevel(), prevHighest)
		prevHighest = s.HighestLevel()
	}

	r, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, DifficultyMedium, r.HighestLevel)
	assert.Equal(t, 3, r.CorrectAnswers)
	assert.Equal(t, 60, r.Accuracy)
}

func TestSession_AnswerValidation(t *testing.T) {
	s := newTestSession(t)

	_, err := s.Answer(0)
	assert.ErrorIs(t, err, ErrNotInProgress)

	_, err = s.Start("Python")
	require.NoError(t, err)

	_, err = s.Answer(NoSelection)
	assert.ErrorIs(t, err, ErrNoAnswer)
	_, err = s.Answer(OptionCount)
	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.Equal(t, 1, s.Round())
}

func TestSession_NoRepeatsWithinRun(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Start("IoT")
	require.NoError(t, err)

	seen := map[string]bool{s.Current().ID: true}
	for round := 1; round < 5; round++ {
		step, err := s.Answer(s.Current().CorrectIndex)
		require.NoError(t, err)
		require.NotNil(t, step.Next)
		assert.False(t, seen[step.Next.ID], "question %s repeated", step.Next.ID)
		seen[step.Next.ID] = true
	}
}

func TestSession_DebouncedViolationsCountOnce(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Start("Java")
	require.NoError(t, err)
	t0 := time.Unix(1_700_000_000, 0)

	obs, err := s.Observe(Signal{Kind: SignalVisibilityHidden, At: t0})
	require.NoError(t, err)
	assert.Equal(t, VerdictWarning, obs.Verdict)

	obs, err = s.Observe(Signal{Kind: SignalWindowBlur, At: t0.Add(100 * time.Millisecond)})
	require.NoError(t, err)
	assert.Equal(t, VerdictDebounced, obs.Verdict)
	assert.Equal(t, 1, s.Violations())
	assert.Equal(t, StateInProgress, s.State())
}

func TestSession_AbortResetsToBaseline(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Start("Java, Python")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = s.Answer(s.Current().CorrectIndex)
		require.NoError(t, err)
	}
	require.Equal(t, 3, s.CorrectCount())

	t0 := time.Unix(1_700_000_000, 0)
	_, err = s.Observe(Signal{Kind: SignalVisibilityHidden, At: t0})
	require.NoError(t, err)
	obs, err := s.Observe(Signal{Kind: SignalVisibilityHidden, At: t0.Add(time.Second)})
	require.NoError(t, err)
	assert.Equal(t, VerdictAborted, obs.Verdict)

	assert.Equal(t, StateAborted, s.State())
	r, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, DifficultyEasy, r.HighestLevel)
	assert.Equal(t, 0, r.CorrectAnswers)
	assert.Equal(t, 0, r.Accuracy)
	assert.Equal(t, 2, r.Violations)
	assert.Equal(t, "Assessment terminated after 2 tab switch violation(s).", r.AbortReason)

	_, err = s.Answer(0)
	assert.ErrorIs(t, err, ErrNotInProgress)
	obs, err = s.Observe(Signal{Kind: SignalVisibilityHidden, At: t0.Add(5 * time.Second)})
	require.NoError(t, err)
	assert.Equal(t, VerdictIgnored, obs.Verdict)
}

func TestSession_CompletionReleasesMonitor(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Start("C++")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = s.Answer(s.Current().CorrectIndex)
		require.NoError(t, err)
	}

	obs, err := s.Observe(Signal{Kind: SignalVisibilityHidden, At: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, VerdictIgnored, obs.Verdict)
	assert.Equal(t, StateCompleted, s.State())
}

func TestSession_CloseDiscardsRun(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Start("Python")
	require.NoError(t, err)
	s.Close()

	_, err = s.Answer(0)
	assert.ErrorIs(t, err, ErrSessionClosed)
	_, ok := s.Result()
	assert.False(t, ok)
}

func TestSkillLabelTruncates(t *testing.T) {
	names := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		names = append(names, "Python")
	}
	label := SkillLabel(names)
	assert.LessOrEqual(t, len([]rune(label)), MaxSkillLabelLength)
	assert.Equal(t, "Java, C", SkillLabel([]string{"Java", "C"}))
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 60, Accuracy(3, 5))
	assert.Equal(t, 40, Accuracy(2, 5))
	assert.Equal(t, 0, Accuracy(0, 0))
	assert.Equal(t, 67, Accuracy(2, 3))
}
