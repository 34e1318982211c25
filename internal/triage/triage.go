// Package triage guesses a card's priority from its text and proposes
// follow-up tasks. Both are keyword and canned-list heuristics; nothing
// here calls out to a model.
package triage

import (
	"math/rand/v2"
	"strings"
	gosync "sync"

	"github.com/nhle/flowstate/internal/model"
)

var (
	highWords   = []string{"bug", "crash", "fix", "error", "urgent"}
	mediumWords = []string{"feature", "update", "enhance"}
)

// Ideas are the tasks Suggest picks from.
var Ideas = []string{
	"Add missing unit tests",
	"Refactor existing code for performance",
	"Improve documentation clarity",
	"Review code for potential bugs",
	"Implement dark mode for UI",
}

// PredictPriority maps card text to a priority. Words are matched as
// case-insensitive substrings, so "hotfix" counts as a fix. High wins
// over Medium; text with neither is Low.
func PredictPriority(text string) model.Priority {
	t := strings.ToLower(text)
	switch {
	case containsAny(t, highWords):
		return model.PriorityHigh
	case containsAny(t, mediumWords):
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Suggester hands out task ideas. It is safe for concurrent use.
type Suggester struct {
	mu  gosync.Mutex
	rng *rand.Rand
}

// NewSuggester uses r for its picks, or a randomly seeded source when r
// is nil. r must not be shared with other goroutines.
func NewSuggester(r *rand.Rand) *Suggester {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Suggester{rng: r}
}

// Suggest returns one of Ideas. The context text is accepted for callers
// that have it but does not steer the pick.
func (s *Suggester) Suggest(context string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Ideas[s.rng.IntN(len(Ideas))]
}
