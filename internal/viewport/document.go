package viewport

import (
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// Document is the immutable text shown by one or more views.
type Document struct {
	path   string
	text   string
	starts []int
}

// NewDocument indexes text by line.
func NewDocument(path, text string) *Document {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Document{path: path, text: text, starts: starts}
}

// LoadDocument reads path from fs.
func LoadDocument(fs afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	return NewDocument(path, string(data)), nil
}

// Path returns the document's file path.
func (d *Document) Path() string { return d.path }

// Text returns the full document text.
func (d *Document) Text() string { return d.text }

// Len returns the document length in bytes.
func (d *Document) Len() int { return len(d.text) }

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() int { return len(d.starts) }

// LineStart returns the byte offset of line i.
func (d *Document) LineStart(i int) int {
	if i < 0 || i >= len(d.starts) {
		return -1
	}
	return d.starts[i]
}

// Line returns line i without its terminator.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.starts) {
		return ""
	}
	end := len(d.text)
	if i+1 < len(d.starts) {
		end = d.starts[i+1] - 1
	}
	return strings.TrimSuffix(d.text[d.starts[i]:end], "\r")
}

// LineOf returns the line containing offset.
func (d *Document) LineOf(offset int) (int, bool) {
	if offset < 0 || offset > len(d.text) {
		return 0, false
	}
	return sort.Search(len(d.starts), func(i int) bool { return d.starts[i] > offset }) - 1, true
}
