// Package mouse provides mouse input handling for the quickdoc viewer.
//
// The terminal backend reports presses, releases, wheel ticks and plain
// motion through a single event type. Handler sorts them into intents:
//
//	handler := mouse.NewHandler(mouse.DefaultConfig())
//	intent := handler.Handle(mouse.Event{Position: mouse.Position{X: 10, Y: 3}})
//	if intent.Kind == mouse.KindMove {
//	    view.DispatchPointer(...)
//	}
//
// # Regions
//
// Layout describes where a view's gutter, text area and status line sit on
// screen. Classify tells which of them contains a pointer position. Hover
// documentation only reacts to motion over RegionText; motion anywhere else
// counts as the user abandoning the hover.
package mouse
