// Package highlight turns document text into display-class spans using
// chroma for lexing. Spans use absolute half-open byte ranges over the full
// document, so they compose directly with the textpos and search offset
// model. A full re-lex runs on every pass; the UI layer debounces calls so
// cost stays off the keystroke path.
package highlight

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/texit/internal/log"
)

// Span is a half-open byte range [Start, End) tagged with a display class.
// A highlight pass yields spans that are offset-ordered and non-overlapping.
type Span struct {
	Class Class
	Start int
	End   int
}

// Highlighter lexes document text into spans. Safe to reuse across
// documents; results are memoized by content so re-highlighting unchanged
// text is free.
type Highlighter struct {
	cache *gocache.Cache
}

// New creates a Highlighter with a short-lived result cache.
func New() *Highlighter {
	return &Highlighter{
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// Highlight lexes text and returns display spans. The lexer is chosen from
// the filename hint first, then by content analysis; when neither matches,
// the plaintext fallback applies and no spans are produced. Plain-class
// tokens are never emitted: gaps between spans render as plain text. Lexer
// failures degrade to no highlighting rather than an error.
func (h *Highlighter) Highlight(text, filenameHint string) []Span {
	if text == "" {
		return nil
	}

	key := cacheKey(text, filenameHint)
	if cached, ok := h.cache.Get(key); ok {
		return cached.([]Span)
	}

	spans := lex(text, filenameHint)
	h.cache.Set(key, spans, gocache.DefaultExpiration)
	return spans
}

func cacheKey(text, filenameHint string) string {
	sum := sha256.Sum256([]byte(filenameHint + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

func lex(text, filenameHint string) []Span {
	lexer := selectLexer(text, filenameHint)
	if lexer == nil {
		return nil
	}

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		// Lexer failure is never user-facing; the document just renders plain.
		log.ErrorErr(log.CatHighlight, "Tokenise failed", err, "hint", filenameHint)
		return nil
	}

	var spans []Span
	offset := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		length := len(tok.Value)
		if length == 0 {
			continue
		}
		class := Classify(tok.Type)
		if class != ClassPlain {
			spans = append(spans, Span{Class: class, Start: offset, End: offset + length})
		}
		offset += length
	}
	return spans
}

// selectLexer picks a lexer by filename, then by content analysis, then
// falls back to plaintext (nil: no spans at all).
func selectLexer(text, filenameHint string) chroma.Lexer {
	var lexer chroma.Lexer
	if filenameHint != "" {
		lexer = lexers.Match(filenameHint)
	}
	if lexer == nil {
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}
