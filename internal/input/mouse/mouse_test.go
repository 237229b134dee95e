package mouse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/quickdoc/internal/renderer/core"
)

func TestButtonString(t *testing.T) {
	tests := []struct {
		button   Button
		expected string
	}{
		{ButtonNone, "none"},
		{ButtonLeft, "left"},
		{ButtonMiddle, "middle"},
		{ButtonRight, "right"},
		{ButtonScrollUp, "scroll-up"},
		{ButtonScrollDown, "scroll-down"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.button.String())
		})
	}
}

func testLayout() Layout {
	return Layout{
		Gutter: core.RectFromSize(0, 0, 10, 4),
		Text:   core.RectFromSize(0, 4, 10, 36),
		Status: core.RectFromSize(10, 0, 1, 40),
	}
}

func TestLayoutClassify(t *testing.T) {
	l := testLayout()

	tests := []struct {
		name string
		pos  Position
		want Region
	}{
		{"gutter", Position{X: 2, Y: 3}, RegionGutter},
		{"text start", Position{X: 4, Y: 0}, RegionText},
		{"text end", Position{X: 39, Y: 9}, RegionText},
		{"status", Position{X: 10, Y: 10}, RegionStatus},
		{"below", Position{X: 10, Y: 11}, RegionOutside},
		{"right", Position{X: 40, Y: 2}, RegionOutside},
		{"above", Position{X: 5, Y: -1}, RegionOutside},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Classify(tt.pos))
		})
	}
}

func TestClassifyTextOnlyLayout(t *testing.T) {
	l := Layout{Text: core.RectFromSize(2, 2, 3, 5)}
	assert.Equal(t, RegionText, l.Classify(Position{X: 2, Y: 2}))
	assert.Equal(t, RegionOutside, l.Classify(Position{X: 0, Y: 0}))
	assert.Equal(t, RegionOutside, l.Classify(Position{X: 7, Y: 4}))
}

func TestLayoutBounds(t *testing.T) {
	assert.Equal(t, core.RectFromSize(0, 0, 11, 40), testLayout().Bounds())
	assert.Equal(t, core.RectFromSize(1, 1, 2, 2), Layout{Text: core.RectFromSize(1, 1, 2, 2)}.Bounds())
}

func TestRegionString(t *testing.T) {
	assert.Equal(t, "text", RegionText.String())
	assert.Equal(t, "gutter", RegionGutter.String())
	assert.Equal(t, "status", RegionStatus.String())
	assert.Equal(t, "outside", RegionOutside.String())
}

func TestHandlerMotion(t *testing.T) {
	h := NewHandler(DefaultConfig())

	in := h.Handle(Event{Position: Position{X: 1, Y: 1}})
	assert.Equal(t, KindMove, in.Kind)

	// Same cell reported again is not a new move.
	in = h.Handle(Event{Position: Position{X: 1, Y: 1}})
	assert.Equal(t, KindIgnore, in.Kind)

	in = h.Handle(Event{Position: Position{X: 2, Y: 1}})
	assert.Equal(t, KindMove, in.Kind)
	assert.Equal(t, Position{X: 2, Y: 1}, in.Position)
}

func TestHandlerClickAndDrag(t *testing.T) {
	h := NewHandler(DefaultConfig())

	in := h.Handle(Event{Position: Position{X: 5, Y: 5}, Button: ButtonLeft})
	assert.Equal(t, KindClick, in.Kind)
	assert.Equal(t, ButtonLeft, in.Button)

	in = h.Handle(Event{Position: Position{X: 6, Y: 5}, Button: ButtonLeft})
	assert.Equal(t, KindIgnore, in.Kind, "held button is a drag")

	// Release shows up as motion with no button.
	in = h.Handle(Event{Position: Position{X: 6, Y: 5}})
	assert.Equal(t, KindMove, in.Kind)

	in = h.Handle(Event{Position: Position{X: 6, Y: 5}, Button: ButtonLeft})
	assert.Equal(t, KindClick, in.Kind)
}

func TestHandlerScroll(t *testing.T) {
	h := NewHandler(Config{ScrollLines: 2})

	in := h.Handle(Event{Button: ButtonScrollDown})
	assert.Equal(t, KindScroll, in.Kind)
	assert.Equal(t, 2, in.Lines)

	in = h.Handle(Event{Button: ButtonScrollUp})
	assert.Equal(t, -2, in.Lines)
}

func TestNewHandlerDefaultsScrollLines(t *testing.T) {
	h := NewHandler(Config{})
	in := h.Handle(Event{Button: ButtonScrollDown})
	assert.Equal(t, DefaultConfig().ScrollLines, in.Lines)
}
