package overlay

import (
	"sort"
	"sync"

	"github.com/dshills/quickdoc/internal/renderer/backend"
	"github.com/dshills/quickdoc/internal/renderer/core"
)

// Manager manages all overlays and composites them for rendering.
type Manager struct {
	mu sync.RWMutex

	// overlays contains all registered overlays, keyed by ID.
	overlays map[string]Overlay

	// order holds overlay IDs in insertion order; rendering sorts it by
	// priority with insertion order breaking ties.
	order []string

	config Config
}

// NewManager creates a new overlay manager.
func NewManager(config Config) *Manager {
	return &Manager{
		overlays: make(map[string]Overlay),
		config:   config,
	}
}

// Config returns the current configuration.
func (m *Manager) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Add adds an overlay, replacing one with the same ID.
func (m *Manager) Add(overlay Overlay) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := overlay.ID()
	if _, ok := m.overlays[id]; !ok {
		m.order = append(m.order, id)
	}
	m.overlays[id] = overlay
}

// Remove removes an overlay by ID.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.overlays[id]; !ok {
		return false
	}
	delete(m.overlays, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns an overlay by ID.
func (m *Manager) Get(id string) (Overlay, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	overlay, ok := m.overlays[id]
	return overlay, ok
}

// Clear removes all overlays.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overlays = make(map[string]Overlay)
	m.order = nil
}

// Count returns the number of overlays.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.overlays)
}

// Visible returns the visible overlays, lowest priority first.
func (m *Manager) Visible() []Overlay {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Overlay, 0, len(m.order))
	for _, id := range m.order {
		if o := m.overlays[id]; o.IsVisible() {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority() < out[j].Priority()
	})
	return out
}

// At returns the topmost visible overlay covering pos.
func (m *Manager) At(pos core.ScreenPos) (Overlay, bool) {
	visible := m.Visible()
	for i := len(visible) - 1; i >= 0; i-- {
		if visible[i].Bounds().Contains(pos) {
			return visible[i], true
		}
	}
	return nil, false
}

// Composite draws every visible overlay onto b, clipped to the screen.
func (m *Manager) Composite(b backend.Backend) {
	w, h := b.Size()
	screen := core.RectFromSize(0, 0, h, w)
	for _, o := range m.Visible() {
		area := o.Bounds().Intersection(screen)
		for row := area.Top; row < area.Bottom; row++ {
			for col := area.Left; col < area.Right; col++ {
				if cell, ok := o.CellAt(core.NewScreenPos(row, col)); ok {
					b.SetCell(col, row, cell)
				}
			}
		}
	}
}
