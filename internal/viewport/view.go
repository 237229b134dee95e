package viewport

import (
	"sort"
	"sync"

	"github.com/dshills/quickdoc/internal/hover"
	"github.com/dshills/quickdoc/internal/input/mouse"
	"github.com/dshills/quickdoc/internal/renderer/core"
)

// View is one scrollable window onto a Document. The last row of its bounds
// is a status line and the first gutter columns hold line numbers.
type View struct {
	mu sync.RWMutex

	id      hover.ViewportID
	doc     *Document
	session hover.Session
	tabs    tabStops

	bounds  core.ScreenRect
	gutter  int
	topLine int
	leftCol int

	subs    map[uint64]hover.PointerListener
	nextSub uint64
}

func newView(id hover.ViewportID, doc *Document, session hover.Session, bounds core.ScreenRect, gutter int) *View {
	return &View{
		id:      id,
		doc:     doc,
		session: session,
		tabs:    tabStops(DefaultTabWidth),
		bounds:  bounds,
		gutter:  max(gutter, 0),
		subs:    make(map[uint64]hover.PointerListener),
	}
}

// ID returns the view's identifier.
func (v *View) ID() hover.ViewportID { return v.id }

// Session returns the session the view belongs to. It may be nil.
func (v *View) Session() hover.Session { return v.session }

// Document returns the document shown in the view.
func (v *View) Document() *Document { return v.doc }

// Bounds returns the screen area the view occupies.
func (v *View) Bounds() core.ScreenRect {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.bounds
}

// Resize moves the view to a new screen area and keeps the scroll offset valid.
func (v *View) Resize(bounds core.ScreenRect) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.bounds = bounds
	v.topLine = v.clampTop(v.topLine)
}

// SetGutter sets the width of the line-number gutter.
func (v *View) SetGutter(width int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gutter = max(width, 0)
}

// Layout returns the view's screen regions.
func (v *View) Layout() mouse.Layout {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.layout()
}

func (v *View) layout() mouse.Layout {
	b := v.bounds
	if b.Height() < 2 {
		return mouse.Layout{Text: b}
	}
	body := core.ScreenRect{Top: b.Top, Left: b.Left, Bottom: b.Bottom - 1, Right: b.Right}
	gutter := min(v.gutter, body.Width())
	return mouse.Layout{
		Gutter: core.ScreenRect{Top: body.Top, Left: body.Left, Bottom: body.Bottom, Right: body.Left + gutter},
		Text:   core.ScreenRect{Top: body.Top, Left: body.Left + gutter, Bottom: body.Bottom, Right: body.Right},
		Status: core.ScreenRect{Top: b.Bottom - 1, Left: b.Left, Bottom: b.Bottom, Right: b.Right},
	}
}

// TopLine returns the first visible line.
func (v *View) TopLine() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine
}

// VisibleLines returns the half-open range of document lines on screen.
func (v *View) VisibleLines() (start, end int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	rows := v.layout().Text.Height()
	return v.topLine, min(v.topLine+rows, v.doc.LineCount())
}

// ScrollBy scrolls by delta lines and reports whether the offset changed.
func (v *View) ScrollBy(delta int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	top := v.clampTop(v.topLine + delta)
	changed := top != v.topLine
	v.topLine = top
	return changed
}

// ScrollTo puts line at the top of the view.
func (v *View) ScrollTo(line int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topLine = v.clampTop(line)
}

// clampTop keeps the last line reachable without scrolling past it.
func (v *View) clampTop(top int) int {
	rows := max(v.layout().Text.Height(), 1)
	return max(min(top, v.doc.LineCount()-rows), 0)
}

// DisplayLine returns document line i with tabs expanded.
func (v *View) DisplayLine(i int) string {
	return v.tabs.expand(v.doc.Line(i))
}

// OffsetAt projects a screen position onto a document offset. Positions
// outside the text area or past the end of a line have no offset.
func (v *View) OffsetAt(pos mouse.Position) (int, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	text := v.layout().Text
	if !text.Contains(pos.Screen()) {
		return 0, false
	}
	line := v.topLine + pos.Y - text.Top
	if line >= v.doc.LineCount() {
		return 0, false
	}
	off := v.tabs.byteAt(v.doc.Line(line), v.leftCol+pos.X-text.Left)
	if off < 0 {
		return 0, false
	}
	return v.doc.LineStart(line) + off, true
}

// ScreenPosOf returns where the character at offset is drawn, if visible.
func (v *View) ScreenPosOf(offset int) (core.ScreenPos, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	line, ok := v.doc.LineOf(offset)
	if !ok {
		return core.ScreenPos{}, false
	}
	text := v.layout().Text
	col := v.tabs.columnOf(v.doc.Line(line), offset-v.doc.LineStart(line))
	pos := core.NewScreenPos(text.Top+line-v.topLine, text.Left+col-v.leftCol)
	if !text.Contains(pos) {
		return core.ScreenPos{}, false
	}
	return pos, true
}

// SubscribePointer registers l for pointer moves over the view.
func (v *View) SubscribePointer(l hover.PointerListener) hover.Subscription {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.nextSub++
	key := v.nextSub
	v.subs[key] = l
	return subscription(func() {
		v.mu.Lock()
		delete(v.subs, key)
		v.mu.Unlock()
	})
}

// PointerListeners returns the number of registered pointer listeners.
func (v *View) PointerListeners() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.subs)
}

// DispatchPointer delivers a pointer move to listeners in subscription order.
func (v *View) DispatchPointer(region mouse.Region, pos mouse.Position) {
	v.mu.RLock()
	keys := make([]uint64, 0, len(v.subs))
	for k := range v.subs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	listeners := make([]hover.PointerListener, 0, len(keys))
	for _, k := range keys {
		listeners = append(listeners, v.subs[k])
	}
	v.mu.RUnlock()

	ev := hover.PointerEvent{Viewport: v, Region: region, Position: pos}
	for _, l := range listeners {
		l(ev)
	}
}

func (v *View) dropListeners() {
	v.mu.Lock()
	clear(v.subs)
	v.mu.Unlock()
}

// subscription adapts a cancel func to hover.Subscription.
type subscription func()

func (s subscription) Unsubscribe() { s() }
