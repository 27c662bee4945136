package picker

import (
	"strings"
	"testing"
)

type item string

func (i item) Display() string { return string(i) }

// substrScorer matches when pattern is a substring; earlier occurrences
// score higher, which keeps the expected ranking easy to reason about.
type substrScorer struct{}

func (substrScorer) Score(text, pattern string) (int, []int, bool) {
	idx := strings.Index(text, pattern)
	if idx < 0 {
		return 0, nil, false
	}
	matched := make([]int, 0, len(pattern))
	for i := range pattern {
		matched = append(matched, idx+i)
	}
	return 100 - idx, matched, true
}

// flatScorer gives every containing candidate the same score, to exercise
// tie-breaking.
type flatScorer struct{}

func (flatScorer) Score(text, pattern string) (int, []int, bool) {
	if !strings.Contains(text, pattern) {
		return 0, nil, false
	}
	return 1, nil, true
}

func candidates(names ...string) []Candidate {
	cs := make([]Candidate, 0, len(names))
	for _, n := range names {
		cs = append(cs, item(n))
	}
	return cs
}

func displayed(e *Engine) []string {
	var out []string
	for _, m := range e.Matches() {
		out = append(out, e.Candidate(m).Display())
	}
	return out
}

func TestRescanFiltersAndRanks(t *testing.T) {
	t.Parallel()

	e := NewEngine(candidates("apple.txt", "banana.txt", "apricot.txt"), substrScorer{})
	e.Rescan("ap")

	got := displayed(e)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(got), got)
	}
	for _, name := range got {
		if name == "banana.txt" {
			t.Fatalf("banana.txt should not match %q", "ap")
		}
	}
	// Both match at offset 0, so original order decides.
	if got[0] != "apple.txt" || got[1] != "apricot.txt" {
		t.Fatalf("unexpected ranking: %v", got)
	}
}

func TestRescanRanksByDescendingScore(t *testing.T) {
	t.Parallel()

	e := NewEngine(candidates("zzap", "ap", "zap"), substrScorer{})
	e.Rescan("ap")

	want := []string{"ap", "zap", "zzap"}
	got := displayed(e)
	if len(got) != len(want) {
		t.Fatalf("expected %d matches, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rank %d: got %q, want %q", i, got[i], want[i])
		}
	}

	matches := e.Matches()
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Fatalf("scores not descending at %d: %v", i, matches)
		}
	}
}

func TestRescanTieBreakPreservesOriginalOrder(t *testing.T) {
	t.Parallel()

	e := NewEngine(candidates("ab-1", "ab-2", "xx", "ab-3"), flatScorer{})
	e.Rescan("ab")

	matches := e.Matches()
	wantIdx := []int{0, 1, 3}
	if len(matches) != len(wantIdx) {
		t.Fatalf("expected %d matches, got %d", len(wantIdx), len(matches))
	}
	for i, m := range matches {
		if m.Index != wantIdx[i] {
			t.Fatalf("tie-break order broken at %d: got index %d, want %d", i, m.Index, wantIdx[i])
		}
	}
}

func TestRescanNoDuplicateIndices(t *testing.T) {
	t.Parallel()

	e := NewEngine(candidates("aa", "ab", "ac", "ad"), flatScorer{})
	e.Rescan("a")

	seen := make(map[int]bool)
	for _, m := range e.Matches() {
		if seen[m.Index] {
			t.Fatalf("duplicate index %d in ranked view", m.Index)
		}
		seen[m.Index] = true
	}
}

func TestEmptyQueryReturnsUniverseInOrder(t *testing.T) {
	t.Parallel()

	e := NewEngine(candidates("c", "a", "b"), substrScorer{})

	got := displayed(e)
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRescanResetsCursor(t *testing.T) {
	t.Parallel()

	e := NewEngine(candidates("aa", "ab", "ac"), flatScorer{})
	e.MoveDown()
	e.MoveDown()
	if e.Cursor() != 2 {
		t.Fatalf("cursor setup failed: got %d", e.Cursor())
	}

	e.Rescan("a")
	if e.Cursor() != 0 {
		t.Fatalf("cursor not reset on rescan: got %d", e.Cursor())
	}
}

func TestCursorBounds(t *testing.T) {
	t.Parallel()

	e := NewEngine(candidates("a", "b"), substrScorer{})

	e.MoveUp()
	if e.Cursor() != 0 {
		t.Fatalf("MoveUp at top moved cursor to %d", e.Cursor())
	}

	e.MoveDown()
	e.MoveDown()
	if e.Cursor() != 1 {
		t.Fatalf("MoveDown past end moved cursor to %d", e.Cursor())
	}

	empty := NewEngine(nil, substrScorer{})
	empty.MoveDown()
	if empty.Cursor() != 0 {
		t.Fatalf("MoveDown on empty view moved cursor to %d", empty.Cursor())
	}
	if _, ok := empty.Selection(); ok {
		t.Fatal("Selection on empty view reported a candidate")
	}
}

func TestSaveScopeRestrictsSubsequentQueries(t *testing.T) {
	t.Parallel()

	e := NewEngine(candidates("apple.txt", "banana.txt", "apricot.txt"), substrScorer{})
	e.Rescan("ap")
	e.SaveScope()

	if e.Query() != "" {
		t.Fatalf("SaveScope did not clear query: %q", e.Query())
	}
	if got := displayed(e); len(got) != 2 {
		t.Fatalf("scoped empty-query view wrong: %v", got)
	}

	e.Rescan("pric")
	got := displayed(e)
	if len(got) != 1 || got[0] != "apricot.txt" {
		t.Fatalf("scoped query result: got %v, want [apricot.txt]", got)
	}

	// banana matches "an" but is outside the scope.
	e.Rescan("an")
	if got := displayed(e); len(got) != 0 {
		t.Fatalf("scope leaked: %v", got)
	}
}

func TestSaveScopeReplacesPriorScope(t *testing.T) {
	t.Parallel()

	e := NewEngine(candidates("apple.txt", "banana.txt", "apricot.txt"), substrScorer{})
	e.Rescan("ap")
	e.SaveScope()
	e.Rescan("pric")
	e.SaveScope()

	if got := displayed(e); len(got) != 1 || got[0] != "apricot.txt" {
		t.Fatalf("second scope snapshot wrong: %v", got)
	}

	e.ClearScope()
	if e.Scoped() {
		t.Fatal("ClearScope left scope set")
	}
	if got := displayed(e); len(got) != 3 {
		t.Fatalf("cleared scope should restore full universe: %v", got)
	}
}

func TestSaveScopeOnEmptyViewSnapshotsEmptySet(t *testing.T) {
	t.Parallel()

	e := NewEngine(candidates("apple.txt"), substrScorer{})
	e.Rescan("zzz")
	e.SaveScope()

	if got := e.Len(); got != 0 {
		t.Fatalf("empty scope should yield empty view, got %d entries", got)
	}
	e.Rescan("apple")
	if got := e.Len(); got != 0 {
		t.Fatalf("empty scope should swallow every query, got %d entries", got)
	}
}

func TestWindowPageJump(t *testing.T) {
	t.Parallel()

	e := NewEngine(candidates("a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10", "a11"), substrScorer{})

	for cursor := 0; cursor < e.Len(); cursor++ {
		offset, page := e.Window(5)
		if offset%5 != 0 {
			t.Fatalf("offset %d is not a multiple of the row budget", offset)
		}
		if e.Cursor() < offset || e.Cursor() >= offset+5 {
			t.Fatalf("cursor %d outside window [%d, %d)", e.Cursor(), offset, offset+5)
		}
		if len(page) > 5 {
			t.Fatalf("page larger than budget: %d", len(page))
		}
		e.MoveDown()
	}

	// Budget 5, cursor 7 lands on the second page.
	e.Rescan("")
	for i := 0; i < 7; i++ {
		e.MoveDown()
	}
	offset, page := e.Window(5)
	if offset != 5 {
		t.Fatalf("cursor 7 with budget 5: got offset %d, want 5", offset)
	}
	if len(page) != 5 || page[0].Index != 5 || page[4].Index != 9 {
		t.Fatalf("unexpected page: %v", page)
	}
}

func TestWindowEmptyAndZeroBudget(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil, substrScorer{})
	if offset, page := e.Window(5); offset != 0 || page != nil {
		t.Fatalf("empty view window: got offset %d, page %v", offset, page)
	}

	e = NewEngine(candidates("a"), substrScorer{})
	if offset, page := e.Window(0); offset != 0 || page != nil {
		t.Fatalf("zero budget window: got offset %d, page %v", offset, page)
	}
}

func TestFuzzyScorer(t *testing.T) {
	t.Parallel()

	var s FuzzyScorer

	score, matched, ok := s.Score("apple.txt", "ap")
	if !ok {
		t.Fatal("expected ap to match apple.txt")
	}
	if len(matched) != 2 {
		t.Fatalf("expected 2 matched offsets, got %v", matched)
	}
	_ = score

	if _, _, ok := s.Score("banana.txt", "ap"); ok {
		t.Fatal("ap should not match banana.txt")
	}
}
