package mouse

import "github.com/dshills/quickdoc/internal/renderer/core"

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button (plain motion).
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonScrollUp indicates scroll wheel up.
	ButtonScrollUp
	// ButtonScrollDown indicates scroll wheel down.
	ButtonScrollDown
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonScrollUp:
		return "scroll-up"
	case ButtonScrollDown:
		return "scroll-down"
	default:
		return "none"
	}
}

// IsScroll returns true if this is a scroll button.
func (b Button) IsScroll() bool {
	return b == ButtonScrollUp || b == ButtonScrollDown
}

// Position represents a screen coordinate in cells.
type Position struct {
	X int
	Y int
}

// Screen converts the position to renderer coordinates.
func (p Position) Screen() core.ScreenPos {
	return core.NewScreenPos(p.Y, p.X)
}

// Event represents a raw mouse input event.
type Event struct {
	Position Position
	Button   Button
}

// Region classifies which part of a view the pointer is over.
type Region uint8

const (
	// RegionOutside is anywhere not covered by a view.
	RegionOutside Region = iota
	// RegionText is the editing/text area.
	RegionText
	// RegionGutter is the line-number margin.
	RegionGutter
	// RegionStatus is the status line.
	RegionStatus
)

// String returns a string representation of the region.
func (r Region) String() string {
	switch r {
	case RegionText:
		return "text"
	case RegionGutter:
		return "gutter"
	case RegionStatus:
		return "status"
	default:
		return "outside"
	}
}

// Layout describes where a view's regions sit on screen.
type Layout struct {
	Gutter core.ScreenRect
	Text   core.ScreenRect
	Status core.ScreenRect
}

// Bounds returns the smallest rectangle covering every region.
func (l Layout) Bounds() core.ScreenRect {
	b := l.Text
	for _, r := range []core.ScreenRect{l.Gutter, l.Status} {
		if r.IsEmpty() {
			continue
		}
		if b.IsEmpty() {
			b = r
			continue
		}
		b = core.ScreenRect{
			Top:    min(b.Top, r.Top),
			Left:   min(b.Left, r.Left),
			Bottom: max(b.Bottom, r.Bottom),
			Right:  max(b.Right, r.Right),
		}
	}
	return b
}

// Classify maps a screen position to the region of l containing it.
func (l Layout) Classify(p Position) Region {
	pos := p.Screen()
	if !l.Bounds().Contains(pos) {
		return RegionOutside
	}
	switch {
	case l.Text.Contains(pos):
		return RegionText
	case l.Gutter.Contains(pos):
		return RegionGutter
	case l.Status.Contains(pos):
		return RegionStatus
	default:
		return RegionOutside
	}
}

// Config configures mouse handler behavior.
type Config struct {
	// ScrollLines is the number of lines to scroll per wheel tick.
	ScrollLines int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{ScrollLines: 3}
}

// Kind identifies what a handled mouse event means to the viewer.
type Kind uint8

const (
	// KindIgnore means the event has no effect.
	KindIgnore Kind = iota
	// KindMove is plain pointer motion.
	KindMove
	// KindClick is a button press.
	KindClick
	// KindScroll is a wheel tick; Intent.Lines carries the signed amount.
	KindScroll
)

// Intent is the interpretation of one mouse event.
type Intent struct {
	Kind     Kind
	Position Position
	Button   Button
	Lines    int
}

// Handler turns raw mouse events into intents.
//
// The terminal reports motion and button state with the same event type;
// Handler separates plain moves from presses by remembering whether a
// button is still held. Handler is not safe for concurrent use.
type Handler struct {
	config Config
	held   Button
	last   Position
	moved  bool
}

// NewHandler creates a new mouse handler with the given configuration.
func NewHandler(config Config) *Handler {
	if config.ScrollLines <= 0 {
		config.ScrollLines = DefaultConfig().ScrollLines
	}
	return &Handler{config: config}
}

// Handle interprets event.
func (h *Handler) Handle(event Event) Intent {
	switch {
	case event.Button.IsScroll():
		lines := h.config.ScrollLines
		if event.Button == ButtonScrollUp {
			lines = -lines
		}
		return Intent{Kind: KindScroll, Position: event.Position, Button: event.Button, Lines: lines}

	case event.Button == ButtonNone:
		h.held = ButtonNone
		if h.moved && h.last == event.Position {
			return Intent{Kind: KindIgnore, Position: event.Position}
		}
		h.last = event.Position
		h.moved = true
		return Intent{Kind: KindMove, Position: event.Position}

	case event.Button == h.held:
		// Drag with the button still down.
		return Intent{Kind: KindIgnore, Position: event.Position, Button: event.Button}

	default:
		h.held = event.Button
		return Intent{Kind: KindClick, Position: event.Position, Button: event.Button}
	}
}
