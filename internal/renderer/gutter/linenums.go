// Package gutter formats the line-number margin.
package gutter

import "strconv"

// MinDigits is the narrowest number column drawn.
const MinDigits = 3

// Width returns the gutter width for a document of lineCount lines: the
// digits of the largest line number and one separating space.
func Width(lineCount int) int {
	return max(countDigits(lineCount), MinDigits) + 1
}

// Format returns the right-aligned, 1-based number for 0-based line,
// padded to width. Lines past the document are blank.
func Format(line, lineCount, width int) string {
	if line < 0 || line >= lineCount {
		return PadLeft("", width)
	}
	return PadLeft(strconv.Itoa(line+1)+" ", width)
}

// PadLeft pads a string with spaces on the left to the specified width.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := make([]byte, width-len(s))
	for i := range padding {
		padding[i] = ' '
	}
	return string(padding) + s
}

// FormatPosition formats a 0-based position as 1-based "line:col".
func FormatPosition(line, col int) string {
	return strconv.Itoa(line+1) + ":" + strconv.Itoa(col+1)
}

func countDigits(n int) int {
	if n < 10 {
		return 1
	}
	digits := 0
	for n > 0 {
		digits++
		n /= 10
	}
	return digits
}
