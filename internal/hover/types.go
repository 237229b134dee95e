package hover

import (
	"github.com/dshills/quickdoc/internal/input/mouse"
	"github.com/dshills/quickdoc/internal/renderer/core"
)

// ViewportID identifies an editing surface. IDs are never reused.
type ViewportID uint64

// Element is a program element in a document: an identifier, a keyword,
// a run of whitespace. Two elements are the same element when their IDs
// match; the other fields are descriptive.
type Element struct {
	ID         string
	Path       string
	Start, End int
	Text       string
	Kind       string
	Whitespace bool
}

// Equal reports whether e and other identify the same element.
func (e Element) Equal(other Element) bool {
	return e.ID == other.ID
}

// IsZero reports whether e is the zero Element.
func (e Element) IsZero() bool {
	return e.ID == ""
}

// PointerEvent is one reported pointer movement inside a viewport.
type PointerEvent struct {
	Viewport Viewport
	Region   mouse.Region
	Position mouse.Position
}

// PointerListener receives pointer movements.
type PointerListener func(PointerEvent)

// Subscription is a registered listener handle.
type Subscription interface {
	Unsubscribe()
}

// Viewport is one open view of a document.
type Viewport interface {
	ID() ViewportID

	// Session returns the project/session the viewport belongs to, or nil
	// for transient viewports that have none.
	Session() Session

	// OffsetAt projects a screen position onto a document byte offset.
	OffsetAt(pos mouse.Position) (int, bool)

	// ScreenPosOf returns where the character at offset is drawn.
	ScreenPosOf(offset int) (core.ScreenPos, bool)

	// SubscribePointer registers l for pointer moves over this viewport.
	SubscribePointer(l PointerListener) Subscription
}

// ViewportListener is notified as viewports come and go.
type ViewportListener interface {
	ViewportCreated(vp Viewport)
	ViewportDestroyed(id ViewportID)
}

// ViewportSource enumerates live viewports.
type ViewportSource interface {
	Viewports() []Viewport
	Lookup(id ViewportID) (Viewport, bool)
	SubscribeViewports(l ViewportListener) Subscription
}

// Session groups the collaborators shared by the viewports of one project.
type Session interface {
	Resolver() ElementResolver
	Presenter() Presenter
}

// ElementResolver maps document offsets to elements.
type ElementResolver interface {
	// ElementAt returns the element covering offset.
	ElementAt(offset int) (Element, bool)

	// ResolveTarget returns the element documentation should describe for
	// element found at offset. It may differ from element, e.g. a usage
	// resolves to its declaration.
	ResolveTarget(offset int, element Element) (Element, bool)
}

// Presenter shows documentation popups.
type Presenter interface {
	// CurrentPopup returns the visible popup, or nil.
	CurrentPopup() Popup

	// Show displays documentation for target anchored at anchor on vp.
	// onClose runs once when the popup goes away for any reason. Show
	// returns nil if there is nothing to display.
	Show(vp Viewport, target, anchor Element, onClose func()) Popup
}

// Popup is a visible documentation popup.
type Popup interface {
	ID() string
	Bounds() core.ScreenRect
	Dismiss()
}
