// Package search implements literal and regex find/replace over a document
// string. Queries are stateless: every call re-derives matches from the
// current text and a start offset, so results never go stale across edits.
package search

import (
	"fmt"
	"regexp"
)

// ErrBadPattern reports an invalid regex pattern. Callers distinguish it
// from "no match" so the UI can surface it without touching the buffer or
// selection.
type ErrBadPattern struct {
	Pattern string
	Err     error
}

func (e *ErrBadPattern) Error() string {
	return fmt.Sprintf("bad pattern %q: %v", e.Pattern, e.Err)
}

func (e *ErrBadPattern) Unwrap() error { return e.Err }

// Query describes a single search. The zero value matches nothing.
type Query struct {
	Pattern       string
	IsRegex       bool
	CaseSensitive bool
}

// Match is a half-open byte range [Start, End) in the searched text.
type Match struct {
	Start int
	End   int
}

// compile turns the query into a regexp. Literal queries are quoted so
// metacharacters match themselves; case-insensitivity is applied via (?i).
func (q Query) compile() (*regexp.Regexp, error) {
	pattern := q.Pattern
	if !q.IsRegex {
		pattern = regexp.QuoteMeta(pattern)
	}
	if !q.CaseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &ErrBadPattern{Pattern: q.Pattern, Err: err}
	}
	return re, nil
}

// FindNext searches forward from fromOffset+1 so that repeated calls advance
// past the previous match. When no match exists between there and the end of
// the document, the search wraps to offset 0. Returns ok=false only when the
// pattern is empty or absent from the entire document.
func FindNext(text string, q Query, fromOffset int) (Match, bool, error) {
	if q.Pattern == "" {
		return Match{}, false, nil
	}
	re, err := q.compile()
	if err != nil {
		return Match{}, false, err
	}

	start := fromOffset + 1
	if start < 0 {
		start = 0
	}
	if start <= len(text) {
		if loc := re.FindStringIndex(text[start:]); loc != nil {
			return Match{Start: start + loc[0], End: start + loc[1]}, true, nil
		}
	}

	// Wrap around to the beginning.
	if loc := re.FindStringIndex(text); loc != nil {
		return Match{Start: loc[0], End: loc[1]}, true, nil
	}
	return Match{}, false, nil
}

// ReplaceAll applies the substitution to the whole text in one pass and
// reports whether anything changed. Regex queries expand $1-style references
// in the replacement; literal queries insert the replacement verbatim.
// An empty pattern is a no-op.
func ReplaceAll(text string, q Query, replacement string) (string, bool, error) {
	if q.Pattern == "" {
		return text, false, nil
	}
	re, err := q.compile()
	if err != nil {
		return text, false, err
	}

	var result string
	if q.IsRegex {
		result = re.ReplaceAllString(text, replacement)
	} else {
		result = re.ReplaceAllLiteralString(text, replacement)
	}
	return result, result != text, nil
}
