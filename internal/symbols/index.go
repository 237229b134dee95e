// Package symbols maps offsets in a source file to program elements, the
// declarations they refer to, and the documentation of those declarations.
package symbols

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/dshills/quickdoc/internal/hover"
)

// Element kinds.
const (
	KindIdent    = "ident"
	KindKeyword  = "keyword"
	KindLiteral  = "literal"
	KindComment  = "comment"
	KindOperator = "operator"
	KindWord     = "word"
	KindPunct    = "punct"
	KindSpace    = "space"
	KindExternal = "external"
)

// Index resolves elements of one document and documents its targets.
type Index interface {
	hover.ElementResolver

	// Documentation returns a one-line title, usually a signature, and the
	// doc comment of target.
	Documentation(target hover.Element) (title, body string, ok bool)

	// Path returns the indexed file's path.
	Path() string
}

// Build indexes text. Go sources are parsed and type-checked; anything
// else, including Go that cannot be parsed at all, is indexed as words.
func Build(path, text string, logger zerolog.Logger, opts ...GoOption) Index {
	if filepath.Ext(path) == ".go" {
		idx, err := ParseGo(path, text, opts...)
		if err == nil {
			return idx
		}
		logger.Warn().Err(err).Str("path", path).Msg("indexing as plain text")
	}
	return NewPlain(path, text)
}

// span is a classified byte range [start, end).
type span struct {
	start, end int
	kind       string
}

// spans is sorted and covers the document without gaps.
type spans []span

func (s spans) find(offset int) (span, bool) {
	i := sort.Search(len(s), func(i int) bool { return s[i].end > offset })
	if i == len(s) || offset < s[i].start {
		return span{}, false
	}
	return s[i], true
}

// fillGaps inserts whitespace spans between the given non-overlapping,
// sorted spans and up to length.
func fillGaps(in []span, length int) spans {
	out := make(spans, 0, len(in)*2+1)
	pos := 0
	for _, s := range in {
		if s.start > pos {
			out = append(out, span{start: pos, end: s.start, kind: KindSpace})
		}
		if s.end <= s.start || s.start < pos {
			continue
		}
		out = append(out, s)
		pos = s.end
	}
	if pos < length {
		out = append(out, span{start: pos, end: length, kind: KindSpace})
	}
	return out
}

func elementID(path string, start int) string {
	return fmt.Sprintf("%s#%d", path, start)
}

func makeElement(path, text string, s span) hover.Element {
	return hover.Element{
		ID:         elementID(path, s.start),
		Path:       path,
		Start:      s.start,
		End:        s.end,
		Text:       text[s.start:s.end],
		Kind:       s.kind,
		Whitespace: s.kind == KindSpace,
	}
}
