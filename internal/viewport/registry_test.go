package viewport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quickdoc/internal/hover"
	"github.com/dshills/quickdoc/internal/input/mouse"
	"github.com/dshills/quickdoc/internal/loop"
	"github.com/dshills/quickdoc/internal/renderer/core"
)

type recordingListener struct {
	created   []hover.ViewportID
	destroyed []hover.ViewportID
}

func (l *recordingListener) ViewportCreated(vp hover.Viewport) {
	l.created = append(l.created, vp.ID())
}

func (l *recordingListener) ViewportDestroyed(id hover.ViewportID) {
	l.destroyed = append(l.destroyed, id)
}

func TestRegistryOpenClose(t *testing.T) {
	reg := NewRegistry(WithGutter(4))
	rec := &recordingListener{}
	sub := reg.SubscribeViewports(rec)

	a := reg.Open(NewDocument("a", "a"), nil, core.RectFromSize(0, 0, 5, 20))
	b := reg.Open(NewDocument("b", "b"), nil, core.RectFromSize(5, 0, 5, 20))
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, 4, a.Layout().Text.Left)

	got, ok := reg.Lookup(b.ID())
	require.True(t, ok)
	assert.Equal(t, b.ID(), got.ID())

	assert.True(t, reg.Close(a.ID()))
	assert.False(t, reg.Close(a.ID()))
	_, ok = reg.Lookup(a.ID())
	assert.False(t, ok)
	assert.Len(t, reg.Viewports(), 1)

	sub.Unsubscribe()
	reg.Open(NewDocument("c", "c"), nil, core.RectFromSize(0, 0, 5, 20))

	assert.Equal(t, []hover.ViewportID{a.ID(), b.ID()}, rec.created)
	assert.Equal(t, []hover.ViewportID{a.ID()}, rec.destroyed)
}

func TestRegistryIDsAreNotReused(t *testing.T) {
	reg := NewRegistry()
	a := reg.Open(NewDocument("a", ""), nil, core.RectFromSize(0, 0, 5, 20))
	reg.Close(a.ID())
	b := reg.Open(NewDocument("a", ""), nil, core.RectFromSize(0, 0, 5, 20))
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestRegistryLookupMissIsUntypedNil(t *testing.T) {
	vp, ok := NewRegistry().Lookup(42)
	assert.False(t, ok)
	assert.Nil(t, vp)
}

func TestCloseDropsPointerListeners(t *testing.T) {
	reg := NewRegistry()
	v := reg.Open(NewDocument("a", "a"), nil, core.RectFromSize(0, 0, 5, 20))
	v.SubscribePointer(func(hover.PointerEvent) {})

	reg.Close(v.ID())
	assert.Zero(t, v.PointerListeners())
}

// wordSession resolves every non-space byte run as its own target.
type wordSession struct {
	doc       *Document
	presenter *countingPresenter
}

func (s *wordSession) Resolver() hover.ElementResolver { return s }
func (s *wordSession) Presenter() hover.Presenter      { return s.presenter }

func (s *wordSession) ElementAt(offset int) (hover.Element, bool) {
	text := s.doc.Text()
	if offset < 0 || offset >= len(text) {
		return hover.Element{}, false
	}
	if text[offset] == ' ' || text[offset] == '\n' {
		return hover.Element{ID: "ws", Whitespace: true}, true
	}
	start, end := offset, offset
	for start > 0 && text[start-1] != ' ' && text[start-1] != '\n' {
		start--
	}
	for end < len(text) && text[end] != ' ' && text[end] != '\n' {
		end++
	}
	return hover.Element{ID: text[start:end], Start: start, End: end, Text: text[start:end]}, true
}

func (s *wordSession) ResolveTarget(_ int, e hover.Element) (hover.Element, bool) {
	return e, true
}

type countingPresenter struct {
	shown []string
}

func (p *countingPresenter) CurrentPopup() hover.Popup { return nil }

func (p *countingPresenter) Show(_ hover.Viewport, target, _ hover.Element, _ func()) hover.Popup {
	p.shown = append(p.shown, target.ID)
	return nil
}

func TestRegistryDrivesHoverManager(t *testing.T) {
	clock := loop.NewVirtual()
	reg := NewRegistry(WithGutter(2))
	doc := NewDocument("w", "alpha beta\ngamma")
	session := &wordSession{doc: doc, presenter: &countingPresenter{}}

	mgr := hover.NewManager(reg, clock, hover.WithDelay(100*time.Millisecond))
	mgr.SetEnabled(true)
	v := reg.Open(doc, session, core.RectFromSize(0, 0, 5, 20))
	require.Equal(t, 1, v.PointerListeners())

	v.DispatchPointer(mouse.RegionText, mouse.Position{X: 9, Y: 0})
	clock.Advance(time.Second)
	assert.Equal(t, []string{"beta"}, session.presenter.shown)

	v.DispatchPointer(mouse.RegionText, mouse.Position{X: 2, Y: 1})
	reg.Close(v.ID())
	clock.Advance(time.Second)
	assert.Equal(t, []string{"beta"}, session.presenter.shown)
	assert.False(t, mgr.Pending())
}
