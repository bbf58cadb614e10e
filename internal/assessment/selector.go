package assessment

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Selector picks questions from a bank. It is safe for concurrent use.
type Selector struct {
	bank *Bank

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector returns a Selector drawing from src. A nil src seeds from the clock.
func NewSelector(bank *Bank, src rand.Source) *Selector {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>17|1)
	}
	return &Selector{bank: bank, rng: rand.New(src)}
}

// Bank returns the underlying question bank.
func (s *Selector) Bank() *Bank {
	return s.bank
}

// Pick returns a question for the given categories and difficulty, in order of preference:
//  1. an unused question at the requested difficulty,
//  2. an unused question at any difficulty,
//  3. any question at the requested difficulty, repeats allowed.
//
// categories must be non-empty; ParseBank guarantees tier 3 is then non-empty.
func (s *Selector) Pick(categories []Category, difficulty Difficulty, exclude map[string]struct{}) Question {
	target := s.pool(categories, []Difficulty{difficulty}, exclude)
	if len(target) > 0 {
		return s.choose(target)
	}

	fallback := s.pool(categories, Difficulties, exclude)
	if len(fallback) > 0 {
		return s.choose(fallback)
	}

	return s.choose(s.pool(categories, []Difficulty{difficulty}, nil))
}

func (s *Selector) pool(categories []Category, difficulties []Difficulty, exclude map[string]struct{}) []Question {
	var out []Question
	for _, c := range categories {
		for _, d := range difficulties {
			for _, q := range s.bank.Questions(c, d) {
				if _, used := exclude[q.ID]; used {
					continue
				}
				out = append(out, q)
			}
		}
	}
	return out
}

func (s *Selector) choose(pool []Question) Question {
	s.mu.Lock()
	i := s.rng.IntN(len(pool))
	s.mu.Unlock()
	return pool[i]
}
