// Package statusline draws the status line at the bottom of each view.
package statusline

import (
	"fmt"

	"github.com/dshills/quickdoc/internal/renderer/backend"
	"github.com/dshills/quickdoc/internal/renderer/core"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageError
)

// StatusLine holds what one view's status line shows.
type StatusLine struct {
	filename   string
	hover      bool
	firstLine  int
	lastLine   int
	totalLines int

	message     string
	messageType MessageType
}

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{}
}

// SetFilename updates the displayed filename.
func (s *StatusLine) SetFilename(filename string) {
	s.filename = filename
}

// SetHover updates the hover mode badge.
func (s *StatusLine) SetHover(enabled bool) {
	s.hover = enabled
}

// SetLines updates the visible line range [first, last) and the total.
func (s *StatusLine) SetLines(first, last, total int) {
	s.firstLine, s.lastLine, s.totalLines = first, last, total
}

// SetMessage displays a status message in place of the filename.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// Badge returns the mode indicator text.
func (s *StatusLine) Badge() string {
	if s.hover {
		return " HOVER "
	}
	return " ----- "
}

// Position returns the right-aligned position summary.
func (s *StatusLine) Position() string {
	if s.totalLines == 0 {
		return "empty"
	}
	pct := 100
	if s.totalLines > s.lastLine-s.firstLine {
		pct = s.lastLine * 100 / s.totalLines
	}
	return fmt.Sprintf("%d-%d/%d %3d%%", s.firstLine+1, s.lastLine, s.totalLines, pct)
}

// Render draws the status line into rect's first row.
func (s *StatusLine) Render(b backend.Backend, rect core.ScreenRect, style core.Style) {
	if rect.IsEmpty() {
		return
	}
	row := rect.Top
	b.Fill(core.RectFromSize(row, rect.Left, 1, rect.Width()), core.NewStyledCell(' ', style))

	col := rect.Left
	col = put(b, row, col, rect.Right, s.Badge(), style.WithAttributes(core.AttrBold|core.AttrReverse))
	col = put(b, row, col, rect.Right, " ", style)

	text, textStyle := s.filename, style
	if text == "" {
		text = "[No Name]"
	}
	if s.message != "" {
		text = s.message
		if s.messageType == MessageError {
			textStyle = style.WithAttributes(core.AttrBold)
		}
	}

	pos := s.Position()
	posStart := rect.Right - len(pos) - 1
	limit := rect.Right
	if posStart > col {
		limit = posStart - 1
	}
	put(b, row, col, limit, text, textStyle)
	if posStart > col {
		put(b, row, posStart, rect.Right, pos, style)
	}
}

func put(b backend.Backend, row, col, limit int, text string, style core.Style) int {
	for _, r := range text {
		if col >= limit {
			break
		}
		b.SetCell(col, row, core.NewStyledCell(r, style))
		col++
	}
	return col
}
