package assessment

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testBankYAML builds a bank with perBucket questions in every bucket.
// Question ids are "<category>-<difficulty>-<n>" and option 0 is always correct.
func testBankYAML(perBucket int) string {
	var b strings.Builder
	for _, c := range Categories {
		fmt.Fprintf(&b, "- category: %s\n  levels:\n", c)
		for _, d := range Difficulties {
			fmt.Fprintf(&b, "    - difficulty: %d\n      questions:\n", d)
			for i := 0; i < perBucket; i++ {
				fmt.Fprintf(&b, "        - id: %q\n", fmt.Sprintf("%s-%d-%d", c, d, i))
				fmt.Fprintf(&b, "          prompt: %q\n", fmt.Sprintf("%s question %d at %s", c.Label(), i, d))
				b.WriteString("          options: [\"right\", \"wrong a\", \"wrong b\", \"wrong c\"]\n")
				b.WriteString("          correct: 0\n")
			}
		}
	}
	return b.String()
}

func newTestBank(t *testing.T, perBucket int) *Bank {
	t.Helper()
	bank, err := ParseBank([]byte(testBankYAML(perBucket)))
	require.NoError(t, err)
	return bank
}

func newTestSelector(t *testing.T, perBucket int) *Selector {
	t.Helper()
	return NewSelector(newTestBank(t, perBucket), rand.NewPCG(1, 2))
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(newTestSelector(t, 3), DefaultConfig())
}

// wrongChoice returns an option index that is not correct for q.
func wrongChoice(q Question) int {
	return (q.CorrectIndex + 1) % len(q.Options)
}
