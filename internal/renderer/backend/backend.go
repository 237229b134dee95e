// Package backend provides terminal backend abstraction for the renderer.
package backend

import (
	"sync"

	"github.com/dshills/quickdoc/internal/renderer/core"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventFocus
	// EventWake carries no data; it only unblocks PollEvent.
	EventWake
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse event fields. MouseButton is MouseNone for plain motion.
	MouseX, MouseY int
	MouseButton    MouseButton

	// Resize event fields
	Width, Height int

	// Focus event fields
	Focused bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the viewer binds.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyF1
	KeyF2
	KeyCtrlC
	KeyCtrlW
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// MouseButton represents mouse button state.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// Backend defines the interface for terminal/display backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, cell core.Cell)

	// GetCell returns the cell at the given position.
	GetCell(x, y int) core.Cell

	// Fill fills a rectangular region with the given cell.
	Fill(rect core.ScreenRect, cell core.Cell)

	// Clear clears the entire screen with the default style.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits for and returns the next terminal event.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)

	// EnableMouse enables mouse event reporting including plain motion.
	EnableMouse()

	// DisableMouse disables mouse event reporting.
	DisableMouse()
}

// NullBackend is an in-memory backend for tests.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	cells         [][]core.Cell
	mouse         bool
	shows         int
	events        chan Event
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cells = newGrid(b.width, b.height)
	return nil
}

func newGrid(width, height int) [][]core.Cell {
	cells := make([][]core.Cell, height)
	for i := range cells {
		cells[i] = make([]core.Cell, width)
		for j := range cells[i] {
			cells[i][j] = core.EmptyCell()
		}
	}
	return cells
}

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

func (b *NullBackend) GetCell(x, y int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

func (b *NullBackend) Fill(rect core.ScreenRect, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for y := max(rect.Top, 0); y < rect.Bottom && y < b.height; y++ {
		for x := max(rect.Left, 0); x < rect.Right && x < b.width; x++ {
			b.cells[y][x] = cell
		}
	}
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cells = newGrid(b.width, b.height)
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	b.shows++
	b.mu.Unlock()
}

func (b *NullBackend) HideCursor() {}

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

func (b *NullBackend) EnableMouse() {
	b.mu.Lock()
	b.mouse = true
	b.mu.Unlock()
}

func (b *NullBackend) DisableMouse() {
	b.mu.Lock()
	b.mouse = false
	b.mu.Unlock()
}

// MouseEnabled reports whether mouse reporting is on, for tests.
func (b *NullBackend) MouseEnabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mouse
}

// ShowCount returns how many times Show was called, for tests.
func (b *NullBackend) ShowCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

// RowText returns row y as a string, for tests.
func (b *NullBackend) RowText(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return ""
	}
	runes := make([]rune, 0, b.width)
	for _, c := range b.cells[y] {
		runes = append(runes, c.Rune)
	}
	return string(runes)
}

// Resize simulates a terminal resize for testing.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.cells = newGrid(width, height)
	b.mu.Unlock()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
