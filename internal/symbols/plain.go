package symbols

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/quickdoc/internal/hover"
)

// Plain indexes text with no language knowledge: runs of letters and
// digits are words. Nothing has a documentation target.
type Plain struct {
	path  string
	text  string
	spans spans
}

// NewPlain indexes text as words.
func NewPlain(path, text string) *Plain {
	var found []span
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			i += size
			continue
		}
		kind := KindPunct
		if isWordRune(r) {
			kind = KindWord
		}
		start := i
		for i < len(text) {
			r, size = utf8.DecodeRuneInString(text[i:])
			if unicode.IsSpace(r) || isWordRune(r) != (kind == KindWord) {
				break
			}
			i += size
		}
		found = append(found, span{start: start, end: i, kind: kind})
	}
	return &Plain{path: path, text: text, spans: fillGaps(found, len(text))}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Path implements Index.
func (p *Plain) Path() string { return p.path }

// ElementAt implements hover.ElementResolver.
func (p *Plain) ElementAt(offset int) (hover.Element, bool) {
	s, ok := p.spans.find(offset)
	if !ok {
		return hover.Element{}, false
	}
	return makeElement(p.path, p.text, s), true
}

// ResolveTarget implements hover.ElementResolver. Plain text has no targets.
func (p *Plain) ResolveTarget(int, hover.Element) (hover.Element, bool) {
	return hover.Element{}, false
}

// Documentation implements Index.
func (p *Plain) Documentation(hover.Element) (string, string, bool) {
	return "", "", false
}
