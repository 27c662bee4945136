package picker

import "github.com/sahilm/fuzzy"

// FuzzyScorer scores with sahilm/fuzzy, the same matcher the bubbles list
// uses for its filtering. Higher scores indicate closer matches; a pattern
// whose runes do not all appear in order yields no score.
type FuzzyScorer struct{}

func (FuzzyScorer) Score(text, pattern string) (int, []int, bool) {
	matches := fuzzy.Find(pattern, []string{text})
	if len(matches) == 0 {
		return 0, nil, false
	}
	return matches[0].Score, matches[0].MatchedIndexes, true
}
