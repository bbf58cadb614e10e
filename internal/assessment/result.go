package assessment

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// MaxSkillLabelLength bounds the skill label carried by a result.
const MaxSkillLabelLength = 100

// Result is the immutable summary of a terminal session.
type Result struct {
	SkillLabel     string
	Categories     []Category
	HighestLevel   Difficulty
	Level          LevelInfo
	Accuracy       int
	TotalQuestions int
	CorrectAnswers int
	Violations     int
	AbortReason    string
}

// Aborted reports whether the session ended on an integrity violation.
func (r Result) Aborted() bool {
	return r.AbortReason != ""
}

// Accuracy returns round(100*correct/total). total must be positive.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// SkillLabel joins the raw skill names with ", " and truncates the result to
// MaxSkillLabelLength runes.
func SkillLabel(names []string) string {
	label := strings.Join(names, ", ")
	if utf8.RuneCountInString(label) <= MaxSkillLabelLength {
		return label
	}
	runes := []rune(label)
	return strings.TrimSpace(string(runes[:MaxSkillLabelLength]))
}

// AbortReason formats the reason recorded on an aborted result.
func AbortReason(violations int) string {
	return fmt.Sprintf("Assessment terminated after %d tab switch violation(s).", violations)
}

func newResult(skills []string, categories []Category, highest Difficulty, correct, total, violations int, reason string) Result {
	cats := make([]Category, len(categories))
	copy(cats, categories)
	return Result{
		SkillLabel:     SkillLabel(skills),
		Categories:     cats,
		HighestLevel:   highest,
		Level:          LevelFor(highest),
		Accuracy:       Accuracy(correct, total),
		TotalQuestions: total,
		CorrectAnswers: correct,
		Violations:     violations,
		AbortReason:    reason,
	}
}
