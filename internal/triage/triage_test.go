package triage

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/flowstate/internal/model"
)

func TestPredictPriority(t *testing.T) {
	cases := []struct {
		text string
		want model.Priority
	}{
		{"Login page crashes on submit", model.PriorityHigh},
		{"URGENT: rotate the API keys", model.PriorityHigh},
		{"Fix typo in footer", model.PriorityHigh},
		{"hotfix for checkout", model.PriorityHigh},
		{"Console error when saving", model.PriorityHigh},
		{"Feature: export to PDF", model.PriorityMedium},
		{"Update onboarding copy", model.PriorityMedium},
		{"Enhance search ranking", model.PriorityMedium},
		{"Fix the feature flag bug", model.PriorityHigh},
		{"Plan the offsite", model.PriorityLow},
		{"", model.PriorityLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PredictPriority(tc.text), "text %q", tc.text)
	}
}

func TestSuggest_PicksFromIdeas(t *testing.T) {
	s := NewSuggester(rand.New(rand.NewPCG(7, 11)))
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		idea := s.Suggest("anything")
		assert.Contains(t, Ideas, idea)
		seen[idea] = true
	}
	assert.Len(t, seen, len(Ideas), "every idea comes up eventually")
}

func TestSuggest_SeededIsReproducible(t *testing.T) {
	a := NewSuggester(rand.New(rand.NewPCG(1, 2)))
	b := NewSuggester(rand.New(rand.NewPCG(1, 2)))
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Suggest(""), b.Suggest(""))
	}
}

func TestSuggest_Concurrent(t *testing.T) {
	s := NewSuggester(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = s.Suggest("")
			}
		}()
	}
	wg.Wait()
}
