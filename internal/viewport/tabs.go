package viewport

import "unicode/utf8"

// DefaultTabWidth is the tab stop interval used when none is configured.
const DefaultTabWidth = 4

type tabStops int

func (t tabStops) next(col int) int {
	w := int(t)
	return col + w - col%w
}

// expand returns s with tabs replaced by spaces.
func (t tabStops) expand(s string) string {
	out := make([]rune, 0, len(s))
	col := 0
	for _, r := range s {
		if r == '\t' {
			for next := t.next(col); col < next; col++ {
				out = append(out, ' ')
			}
			continue
		}
		out = append(out, r)
		col++
	}
	return string(out)
}

// byteAt returns the byte offset in s drawn at display column col, or -1
// when col is past the end of s. Columns inside a tab map to the tab.
func (t tabStops) byteAt(s string, col int) int {
	if col < 0 {
		return -1
	}
	pos := 0
	for i, r := range s {
		width := 1
		if r == '\t' {
			width = t.next(pos) - pos
		}
		if col < pos+width {
			return i
		}
		pos += width
	}
	return -1
}

// columnOf returns the display column of byte offset off in s.
func (t tabStops) columnOf(s string, off int) int {
	col := 0
	for i := 0; i < len(s) && i < off; {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == '\t' {
			col = t.next(col)
		} else {
			col++
		}
		i += size
	}
	return col
}
