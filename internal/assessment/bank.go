package assessment

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

//go:embed bank.yaml
var defaultBankYAML []byte

// Question is a single multiple-choice item. Questions are never mutated
// after the bank is loaded.
type Question struct {
	ID           string
	Prompt       string
	Options      []string
	CorrectIndex int
	Category     Category
	Difficulty   Difficulty
}

// IsCorrect reports whether choice is the correct option index.
func (q Question) IsCorrect(choice int) bool {
	return choice == q.CorrectIndex
}

type bucketKey struct {
	category   Category
	difficulty Difficulty
}

// Bank is a read-only table of questions keyed by (category, difficulty).
type Bank struct {
	buckets map[bucketKey][]Question
	byID    map[string]Question
}

// bankFile mirrors the on-disk YAML layout.
type bankFile []struct {
	Category Category `yaml:"category"`
	Levels   []struct {
		Difficulty Difficulty `yaml:"difficulty"`
		Questions  []struct {
			ID      string   `yaml:"id"`
			Prompt  string   `yaml:"prompt"`
			Options []string `yaml:"options"`
			Correct int      `yaml:"correct"`
		} `yaml:"questions"`
	} `yaml:"levels"`
}

// LoadDefaultBank parses the question bank compiled into the binary.
func LoadDefaultBank() (*Bank, error) {
	return ParseBank(defaultBankYAML)
}

// LoadBankFile parses a YAML question bank from disk.
func LoadBankFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return ParseBank(data)
}

// LoadBank loads path when set, otherwise the embedded bank.
func LoadBank(path string) (*Bank, error) {
	if path == "" {
		return LoadDefaultBank()
	}
	return LoadBankFile(path)
}

// ParseBank builds a Bank from YAML and rejects any bank that breaks the
// coverage invariant: every category has at least one question at every
// difficulty. That invariant is what lets the selector always return a question.
func ParseBank(data []byte) (*Bank, error) {
	var file bankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}

	b := &Bank{
		buckets: make(map[bucketKey][]Question),
		byID:    make(map[string]Question),
	}

	var problems []string
	for _, entry := range file {
		if !entry.Category.Valid() {
			problems = append(problems, fmt.Sprintf("unknown category %q", entry.Category))
			continue
		}
		for _, lvl := range entry.Levels {
			if !lvl.Difficulty.Valid() {
				problems = append(problems, fmt.Sprintf("%s: difficulty %d out of range", entry.Category, lvl.Difficulty))
				continue
			}
			for _, raw := range lvl.Questions {
				q := Question{
					ID:           strings.TrimSpace(raw.ID),
					Prompt:       raw.Prompt,
					Options:      raw.Options,
					CorrectIndex: raw.Correct,
					Category:     entry.Category,
					Difficulty:   lvl.Difficulty,
				}
				if err := validateQuestion(q); err != nil {
					problems = append(problems, err.Error())
					continue
				}
				if _, dup := b.byID[q.ID]; dup {
					problems = append(problems, fmt.Sprintf("duplicate question id %q", q.ID))
					continue
				}
				key := bucketKey{q.Category, q.Difficulty}
				b.buckets[key] = append(b.buckets[key], q)
				b.byID[q.ID] = q
			}
		}
	}

	for _, c := range Categories {
		for _, d := range Difficulties {
			if len(b.buckets[bucketKey{c, d}]) == 0 {
				problems = append(problems, fmt.Sprintf("%s: no questions at difficulty %d", c, d))
			}
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid question bank: %s", strings.Join(problems, "; "))
	}
	return b, nil
}

func validateQuestion(q Question) error {
	switch {
	case q.ID == "":
		return errors.New("question with empty id")
	case strings.TrimSpace(q.Prompt) == "":
		return fmt.Errorf("question %q: empty prompt", q.ID)
	case len(q.Options) != OptionCount:
		return fmt.Errorf("question %q: %d options, want %d", q.ID, len(q.Options), OptionCount)
	case q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options):
		return fmt.Errorf("question %q: correct index %d out of range", q.ID, q.CorrectIndex)
	}
	return nil
}

// Questions returns the questions of one bucket. The slice must not be modified.
func (b *Bank) Questions(c Category, d Difficulty) []Question {
	return b.buckets[bucketKey{c, d}]
}

// Question looks a question up by id.
func (b *Bank) Question(id string) (Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// Len returns the total number of questions.
func (b *Bank) Len() int {
	return len(b.byID)
}

// Coverage returns the bucket sizes, used by operators to audit the bank.
func (b *Bank) Coverage() map[Category]map[Difficulty]int {
	out := make(map[Category]map[Difficulty]int, len(Categories))
	for _, c := range Categories {
		out[c] = make(map[Difficulty]int, len(Difficulties))
		for _, d := range Difficulties {
			out[c][d] = len(b.buckets[bucketKey{c, d}])
		}
	}
	return out
}
