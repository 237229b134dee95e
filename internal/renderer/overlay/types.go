// Package overlay composites floating content, such as documentation
// popups, over the rendered views.
package overlay

import (
	"github.com/dshills/quickdoc/internal/renderer/core"
)

// Kind represents the kind of overlay.
type Kind uint8

const (
	// KindHoverDoc is documentation shown because the pointer rested on an element.
	KindHoverDoc Kind = iota

	// KindDoc is documentation the user asked for explicitly.
	KindDoc

	// KindMessage is a transient notice, e.g. a config reload failure.
	KindMessage
)

// String returns the string representation of the overlay kind.
func (k Kind) String() string {
	switch k {
	case KindHoverDoc:
		return "hover-doc"
	case KindDoc:
		return "doc"
	case KindMessage:
		return "message"
	default:
		return "unknown"
	}
}

// Priority represents the rendering priority of overlays.
// Higher priority overlays are rendered on top.
type Priority uint8

const (
	PriorityLow    Priority = 50
	PriorityNormal Priority = 100
	PriorityHigh   Priority = 150
)

// Overlay is a rectangle of cells drawn above the views.
type Overlay interface {
	// ID returns the unique identifier for this overlay.
	ID() string

	// Kind returns the kind of overlay.
	Kind() Kind

	// Priority returns the rendering priority.
	Priority() Priority

	// Bounds returns the screen area the overlay covers.
	Bounds() core.ScreenRect

	// IsVisible returns true if the overlay should be rendered.
	IsVisible() bool

	// CellAt returns the cell drawn at pos. ok is false where the overlay
	// leaves the content below untouched.
	CellAt(pos core.ScreenPos) (cell core.Cell, ok bool)
}

// BaseOverlay provides common functionality for overlay implementations.
type BaseOverlay struct {
	id       string
	kind     Kind
	priority Priority
	bounds   core.ScreenRect
	visible  bool
}

// NewBaseOverlay creates a new base overlay.
func NewBaseOverlay(id string, kind Kind, priority Priority, bounds core.ScreenRect) *BaseOverlay {
	return &BaseOverlay{
		id:       id,
		kind:     kind,
		priority: priority,
		bounds:   bounds,
		visible:  true,
	}
}

func (o *BaseOverlay) ID() string              { return o.id }
func (o *BaseOverlay) Kind() Kind              { return o.kind }
func (o *BaseOverlay) Priority() Priority      { return o.priority }
func (o *BaseOverlay) Bounds() core.ScreenRect { return o.bounds }
func (o *BaseOverlay) IsVisible() bool         { return o.visible }

// SetVisible sets the overlay visibility.
func (o *BaseOverlay) SetVisible(visible bool) {
	o.visible = visible
}

// SetBounds moves the overlay.
func (o *BaseOverlay) SetBounds(bounds core.ScreenRect) {
	o.bounds = bounds
}

// Config holds popup styling and size limits.
type Config struct {
	// BorderStyle is used for the popup frame.
	BorderStyle core.Style

	// TitleStyle is used for the first line, usually a signature.
	TitleStyle core.Style

	// BodyStyle is used for documentation text.
	BodyStyle core.Style

	// MaxWidth and MaxHeight bound the popup including its frame.
	MaxWidth  int
	MaxHeight int
}

// DefaultConfig returns the default overlay configuration.
func DefaultConfig() Config {
	panel := core.ColorFromRGB(40, 44, 52)
	return Config{
		BorderStyle: core.DefaultStyle().
			WithForeground(core.ColorFromRGB(100, 149, 237)).
			WithBackground(panel),
		TitleStyle: core.DefaultStyle().
			WithForeground(core.ColorFromRGB(229, 192, 123)).
			WithBackground(panel).
			WithAttributes(core.AttrBold),
		BodyStyle: core.DefaultStyle().
			WithForeground(core.ColorFromRGB(171, 178, 191)).
			WithBackground(panel),
		MaxWidth:  72,
		MaxHeight: 12,
	}
}

// MergeStyles merges an overlay style onto a base style.
// Non-default overlay colors win and attributes are combined.
func MergeStyles(base, overlay core.Style) core.Style {
	result := base
	if !overlay.Foreground.IsDefault() {
		result.Foreground = overlay.Foreground
	}
	if !overlay.Background.IsDefault() {
		result.Background = overlay.Background
	}
	result.Attributes |= overlay.Attributes
	return result
}
