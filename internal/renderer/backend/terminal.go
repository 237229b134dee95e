package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"gitlab.com/tozd/go/errors"

	"github.com/dshills/quickdoc/internal/renderer/core"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Errorf("creating screen: %w", err)
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, e.g. tcell.NewSimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return errors.Errorf("initializing screen: %w", err)
	}

	// Hover needs plain motion reports, not just button/drag events.
	t.screen.EnableMouse(tcell.MouseMotionEvents)
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, cell.Rune, nil, convertStyle(cell.Style))
}

func (t *Terminal) GetCell(x, y int) core.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, _, style, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return core.Cell{Rune: mainc, Style: convertTcellStyle(style)}
}

func (t *Terminal) Fill(rect core.ScreenRect, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := convertStyle(cell.Style)
	width, height := t.screen.Size()
	for y := max(rect.Top, 0); y < rect.Bottom && y < height; y++ {
		for x := max(rect.Left, 0); x < rect.Right && x < width; x++ {
			t.screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		// Screen finalized.
		return Event{Type: EventNone}
	}
	return convertEvent(ev)
}

func (t *Terminal) PostEvent(event Event) {
	var ev tcell.Event
	switch event.Type {
	case EventKey:
		ev = tcell.NewEventKey(convertToTcellKey(event.Key), event.Rune, convertToTcellMod(event.Mod))
	case EventWake:
		ev = tcell.NewEventInterrupt(nil)
	default:
		return
	}
	_ = t.screen.PostEvent(ev) // best-effort; event queue may be full
}

func (t *Terminal) EnableMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.EnableMouse(tcell.MouseMotionEvents)
}

func (t *Terminal) DisableMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.DisableMouse()
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault
	if !s.Foreground.IsDefault() {
		style = style.Foreground(convertColor(s.Foreground))
	}
	if !s.Background.IsDefault() {
		style = style.Background(convertColor(s.Background))
	}
	return style.
		Bold(s.Attributes.Has(core.AttrBold)).
		Dim(s.Attributes.Has(core.AttrDim)).
		Italic(s.Attributes.Has(core.AttrItalic)).
		Underline(s.Attributes.Has(core.AttrUnderline)).
		Reverse(s.Attributes.Has(core.AttrReverse))
}

func convertColor(c core.Color) tcell.Color {
	if c.Indexed {
		return tcell.PaletteColor(int(c.R))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// convertTcellStyle converts tcell.Style back to our Style.
func convertTcellStyle(ts tcell.Style) core.Style {
	fg, bg, attrs := ts.Decompose()

	s := core.Style{
		Foreground: convertTcellColor(fg),
		Background: convertTcellColor(bg),
	}
	if attrs&tcell.AttrBold != 0 {
		s.Attributes |= core.AttrBold
	}
	if attrs&tcell.AttrDim != 0 {
		s.Attributes |= core.AttrDim
	}
	if attrs&tcell.AttrItalic != 0 {
		s.Attributes |= core.AttrItalic
	}
	if attrs&tcell.AttrUnderline != 0 {
		s.Attributes |= core.AttrUnderline
	}
	if attrs&tcell.AttrReverse != 0 {
		s.Attributes |= core.AttrReverse
	}
	return s
}

// convertTcellColor converts tcell.Color to our Color.
func convertTcellColor(tc tcell.Color) core.Color {
	if tc == tcell.ColorDefault {
		return core.ColorDefault
	}
	if tc >= tcell.ColorValid && tc < tcell.ColorIsRGB {
		return core.ColorFromIndex(uint8(tc - tcell.ColorValid))
	}
	r, g, b := tc.RGB()
	return core.ColorFromRGB(uint8(r), uint8(g), uint8(b))
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:        EventMouse,
			MouseX:      x,
			MouseY:      y,
			MouseButton: convertMouseButton(e.Buttons()),
			Mod:         convertMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventFocus:
		return Event{Type: EventFocus, Focused: e.Focused}

	case *tcell.EventInterrupt:
		return Event{Type: EventWake}

	default:
		return Event{Type: EventNone}
	}
}

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyRune:    KeyRune,
	tcell.KeyEscape:  KeyEscape,
	tcell.KeyEnter:   KeyEnter,
	tcell.KeyTab:     KeyTab,
	tcell.KeyBacktab: KeyBacktab,
	tcell.KeyUp:      KeyUp,
	tcell.KeyDown:    KeyDown,
	tcell.KeyPgUp:    KeyPageUp,
	tcell.KeyPgDn:    KeyPageDown,
	tcell.KeyHome:    KeyHome,
	tcell.KeyEnd:     KeyEnd,
	tcell.KeyF1:      KeyF1,
	tcell.KeyF2:      KeyF2,
	tcell.KeyCtrlC:   KeyCtrlC,
	tcell.KeyCtrlW:   KeyCtrlW,
}

// convertKey converts tcell key to our Key type.
func convertKey(k tcell.Key) Key {
	if key, ok := tcellKeys[k]; ok {
		return key
	}
	return KeyNone
}

// convertToTcellKey converts our Key to tcell.Key.
func convertToTcellKey(k Key) tcell.Key {
	for tk, key := range tcellKeys {
		if key == k {
			return tk
		}
	}
	return tcell.KeyRune
}

// convertMod converts tcell modifier mask to our ModMask.
func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= ModMeta
	}
	return result
}

// convertToTcellMod converts our ModMask to tcell.ModMask.
func convertToTcellMod(m ModMask) tcell.ModMask {
	var result tcell.ModMask
	if m.Has(ModShift) {
		result |= tcell.ModShift
	}
	if m.Has(ModCtrl) {
		result |= tcell.ModCtrl
	}
	if m.Has(ModAlt) {
		result |= tcell.ModAlt
	}
	if m.Has(ModMeta) {
		result |= tcell.ModMeta
	}
	return result
}

// convertMouseButton converts tcell button mask to our MouseButton.
func convertMouseButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button2 != 0:
		return MouseRight
	case b&tcell.Button3 != 0:
		return MouseMiddle
	case b&tcell.WheelUp != 0:
		return MouseWheelUp
	case b&tcell.WheelDown != 0:
		return MouseWheelDown
	default:
		return MouseNone
	}
}
