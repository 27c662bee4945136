// Package picker implements the ranking, filtering, and scoping engine
// behind the interactive selectors. It holds an immutable candidate
// universe, rescans it against the current query on every keystroke, and
// tracks the highlighted position and any saved scope.
package picker

import "sort"

// Action identifies what the dispatcher should do with a confirmed candidate.
type Action int

const (
	ActionOpen Action = iota
	ActionReplace
	ActionHSplit
	ActionVSplit
)

// Candidate is one selectable item in the picker's fixed universe.
type Candidate interface {
	Display() string
}

// Dispatcher receives the confirmed candidate once the selector closes.
type Dispatcher interface {
	Dispatch(c Candidate, a Action) error
}

// Scorer ranks display text against a query pattern. Implementations must
// be pure functions of their two arguments: a larger score means more
// relevant, and ok reports whether the pattern matches at all.
type Scorer interface {
	Score(text, pattern string) (score int, matched []int, ok bool)
}

// Match pairs a candidate index with its score for the current query.
// Matched holds the rune offsets the scorer matched, for highlighting.
type Match struct {
	Index   int
	Score   int
	Matched []int
}

// Engine recomputes the ranked view of candidates for the current query
// and scope. The candidate slice is owned by the engine after construction
// and must not be mutated by the caller.
type Engine struct {
	candidates []Candidate
	scorer     Scorer
	matches    []Match
	scope      []int // sorted candidate indices, nil when unrestricted
	cursor     int
	query      string
}

func NewEngine(candidates []Candidate, scorer Scorer) *Engine {
	e := &Engine{candidates: candidates, scorer: scorer}
	e.Rescan("")
	return e
}

// Rescan rebuilds the ranked view for query: every candidate in the
// current universe (the saved scope, or everything) is scored, survivors
// are sorted by descending score with ties kept in original order, and the
// cursor resets to the top. Cost is one scorer call per eligible candidate;
// there is no incremental diffing between keystrokes, which is fine for the
// interactively-sized universes this targets.
func (e *Engine) Rescan(query string) {
	e.query = query
	e.matches = e.matches[:0]

	if query == "" {
		// Scoring an empty pattern is a waste; the whole universe
		// survives in original order.
		if e.scope == nil {
			for i := range e.candidates {
				e.matches = append(e.matches, Match{Index: i})
			}
		} else {
			for _, i := range e.scope {
				e.matches = append(e.matches, Match{Index: i})
			}
		}
		e.cursor = 0
		return
	}

	score := func(i int) {
		s, matched, ok := e.scorer.Score(e.candidates[i].Display(), query)
		if !ok {
			return
		}
		e.matches = append(e.matches, Match{Index: i, Score: s, Matched: matched})
	}

	if e.scope == nil {
		for i := range e.candidates {
			score(i)
		}
	} else {
		for _, i := range e.scope {
			score(i)
		}
	}

	// Candidates are visited in ascending index order, so a stable sort
	// on score alone keeps equal-score entries in original order.
	sort.SliceStable(e.matches, func(a, b int) bool {
		return e.matches[a].Score > e.matches[b].Score
	})
	e.cursor = 0
}

// Matches returns the ranked view. The slice is valid until the next Rescan.
func (e *Engine) Matches() []Match {
	return e.matches
}

func (e *Engine) Len() int {
	return len(e.matches)
}

// Total is the size of the full candidate universe, ignoring query and scope.
func (e *Engine) Total() int {
	return len(e.candidates)
}

func (e *Engine) Query() string {
	return e.query
}

func (e *Engine) Cursor() int {
	return e.cursor
}

func (e *Engine) MoveUp() {
	if e.cursor > 0 {
		e.cursor--
	}
}

func (e *Engine) MoveDown() {
	if len(e.matches) == 0 {
		return
	}
	if e.cursor < len(e.matches)-1 {
		e.cursor++
	}
}

// Selection returns the highlighted candidate, if any.
func (e *Engine) Selection() (Candidate, bool) {
	if len(e.matches) == 0 {
		return nil, false
	}
	return e.candidates[e.matches[e.cursor].Index], true
}

// Candidate returns the candidate behind a match from the ranked view.
func (e *Engine) Candidate(m Match) Candidate {
	return e.candidates[m.Index]
}

// SaveScope snapshots the indices currently in the ranked view as the new
// scope, replacing any previous one, and rescans under the empty query.
// The scope already encodes the narrowing accomplished so far, so
// subsequent typing refines within it from a clean slate. Scopes only
// shrink the universe; ClearScope is the only way back out.
func (e *Engine) SaveScope() {
	scope := make([]int, 0, len(e.matches))
	for _, m := range e.matches {
		scope = append(scope, m.Index)
	}
	sort.Ints(scope)
	e.scope = scope
	e.Rescan("")
}

// ClearScope restores the unrestricted universe and rescans the current query.
func (e *Engine) ClearScope() {
	e.scope = nil
	e.Rescan(e.query)
}

// Scoped reports whether a saved scope is restricting the universe.
func (e *Engine) Scoped() bool {
	return e.scope != nil
}

// Window derives the visible slice of the ranked view from the cursor and
// a row budget. The offset advances in whole pages: moving the cursor past
// a page boundary jumps the window rather than scrolling one row at a time.
func (e *Engine) Window(rows int) (offset int, page []Match) {
	if rows <= 0 || len(e.matches) == 0 {
		return 0, nil
	}
	offset = e.cursor / rows * rows
	end := offset + rows
	if end > len(e.matches) {
		end = len(e.matches)
	}
	return offset, e.matches[offset:end]
}
