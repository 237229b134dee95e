package hover

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quickdoc/internal/input/mouse"
	"github.com/dshills/quickdoc/internal/loop"
)

const testDelay = 500 * time.Millisecond

func TestDelayFromSetting(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"", DefaultDelay},
		{"250", 250 * time.Millisecond},
		{" 1200 ", 1200 * time.Millisecond},
		{"0", DefaultDelay},
		{"-5", DefaultDelay},
		{"fast", DefaultDelay},
		{"1.5", DefaultDelay},
		{"99999999999999999999", DefaultDelay},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, DelayFromSetting(tt.raw))
		})
	}
}

func TestNewManagerDefaults(t *testing.T) {
	mgr := NewManager(&fakeSource{}, loop.NewVirtual(), WithDelay(-time.Second))
	assert.Equal(t, DefaultDelay, mgr.Delay())
	assert.False(t, mgr.Enabled())
	assert.False(t, mgr.Pending())
}

func TestSameTargetShowsOnceAfterFirstSchedule(t *testing.T) {
	h := newHarness(testDelay)

	h.view.move(1)
	h.clock.Advance(200 * time.Millisecond)
	h.view.move(2)
	h.clock.Advance(400 * time.Millisecond)
	h.view.move(3)
	h.clock.Advance(2 * time.Second)

	require.Len(t, h.presenter.shows, 1)
	assert.Equal(t, testDelay, h.presenter.shows[0].at)
	assert.Equal(t, "alpha", h.presenter.shows[0].target.ID)
}

func TestJitterDoesNotRestartDelay(t *testing.T) {
	h := newHarness(testDelay)

	for i := 0; i < 8; i++ {
		h.view.move(i % 5)
		h.clock.Advance(50 * time.Millisecond)
	}
	h.clock.Advance(time.Second)

	require.Len(t, h.presenter.shows, 1)
	assert.Equal(t, testDelay, h.presenter.shows[0].at)
}

func TestNewTargetSupersedesPending(t *testing.T) {
	h := newHarness(testDelay)

	h.view.move(1) // alpha
	h.clock.Advance(100 * time.Millisecond)
	h.view.move(21) // delta
	h.clock.Advance(2 * time.Second)

	require.Len(t, h.presenter.shows, 1)
	assert.Equal(t, "delta", h.presenter.shows[0].target.ID)
	assert.Equal(t, 600*time.Millisecond, h.presenter.shows[0].at)
}

func TestUsagesOfSameDeclarationShareIntent(t *testing.T) {
	h := newHarness(testDelay)

	h.view.move(7) // first beta usage
	h.clock.Advance(300 * time.Millisecond)
	h.view.move(11) // second beta usage, same declaration
	h.clock.Advance(time.Second)

	require.Len(t, h.presenter.shows, 1)
	call := h.presenter.shows[0]
	assert.Equal(t, testDelay, call.at)
	assert.Equal(t, "beta-decl", call.target.ID)
	assert.Equal(t, "beta@6", call.anchor.ID, "anchor is the element that started the intent")
}

func TestMovingToNewTargetClosesAutoPopup(t *testing.T) {
	h := newHarness(testDelay)

	h.view.move(1)
	h.clock.Advance(testDelay)
	first := h.presenter.current
	require.NotNil(t, first)

	h.view.move(22)
	assert.True(t, first.dismissed)
	assert.Nil(t, h.presenter.current)
	assert.True(t, h.mgr.Pending())

	h.clock.Advance(testDelay)
	assert.Equal(t, []string{"alpha", "delta"}, h.targets())
}

func TestPointerOverPopupKeepsItOpen(t *testing.T) {
	h := newHarness(testDelay)

	h.view.move(1)
	h.clock.Advance(testDelay)
	popup := h.presenter.current
	require.NotNil(t, popup)

	// Rows 5-9 are the popup; row 6 has no document under it either.
	h.view.moveIn(mouse.RegionText, mouse.Position{X: 3, Y: 6})
	h.clock.Advance(time.Second)

	assert.False(t, popup.dismissed)
	assert.False(t, h.mgr.Pending())
	assert.Len(t, h.presenter.shows, 1)
}

func TestSameTargetWhileShownIsNoop(t *testing.T) {
	h := newHarness(testDelay)

	h.view.move(1)
	h.clock.Advance(testDelay)
	popup := h.presenter.current

	h.view.move(4)
	h.clock.Advance(time.Second)

	assert.False(t, popup.dismissed)
	assert.False(t, h.mgr.Pending())
	assert.Len(t, h.presenter.shows, 1)
}

func TestLeavingTextAreaAbandons(t *testing.T) {
	regions := []mouse.Region{mouse.RegionGutter, mouse.RegionStatus, mouse.RegionOutside}

	for _, region := range regions {
		t.Run(region.String()+" cancels pending", func(t *testing.T) {
			h := newHarness(testDelay)

			h.view.move(1)
			h.clock.Advance(100 * time.Millisecond)
			h.view.moveIn(region, mouse.Position{X: 0, Y: 0})
			assert.False(t, h.mgr.Pending())

			h.clock.Advance(time.Second)
			assert.Empty(t, h.presenter.shows)
			_, tracked := h.mgr.Tracked(1)
			assert.False(t, tracked)
		})

		t.Run(region.String()+" dismisses popup", func(t *testing.T) {
			h := newHarness(testDelay)

			h.view.move(1)
			h.clock.Advance(testDelay)
			popup := h.presenter.current
			require.NotNil(t, popup)

			h.view.moveIn(region, mouse.Position{X: 0, Y: 0})
			assert.True(t, popup.dismissed)
		})
	}
}

func TestUnresolvablePositionsAbandon(t *testing.T) {
	tests := []struct {
		name string
		pos  mouse.Position
	}{
		{"whitespace", mouse.Position{X: 5, Y: 0}},
		{"no target", mouse.Position{X: 16, Y: 0}},
		{"past end of document", mouse.Position{X: 80, Y: 0}},
		{"no document position", mouse.Position{X: 1, Y: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(testDelay)

			h.view.move(1)
			h.clock.Advance(testDelay)
			popup := h.presenter.current
			require.NotNil(t, popup)

			h.view.move(21)
			h.view.moveIn(mouse.RegionText, tt.pos)
			assert.False(t, h.mgr.Pending())
			assert.True(t, popup.dismissed)

			h.clock.Advance(time.Second)
			assert.Equal(t, []string{"alpha"}, h.targets())
		})
	}
}

func TestExplicitPopupIsNeverTouched(t *testing.T) {
	h := newHarness(testDelay)

	explicit := h.presenter.showExplicit()
	h.view.move(1)
	h.view.move(21)
	h.view.moveIn(mouse.RegionGutter, mouse.Position{})
	h.clock.Advance(time.Second)

	assert.False(t, explicit.dismissed)
	assert.Empty(t, h.presenter.shows)
	assert.False(t, h.mgr.Pending())
}

func TestExplicitPopupReplacingAutoPopup(t *testing.T) {
	h := newHarness(testDelay)

	h.view.move(1)
	h.clock.Advance(testDelay)
	auto := h.presenter.current

	explicit := h.presenter.showExplicit()
	assert.True(t, auto.dismissed)

	h.view.move(21)
	h.clock.Advance(time.Second)
	assert.False(t, explicit.dismissed, "manager lost its relation to the replaced popup")
	assert.Len(t, h.presenter.shows, 1)
}

func TestPendingRequestYieldsToExplicitPopup(t *testing.T) {
	h := newHarness(testDelay)

	h.view.move(1)
	explicit := h.presenter.showExplicit()
	h.clock.Advance(testDelay)

	assert.False(t, explicit.dismissed)
	assert.Empty(t, h.presenter.shows)
	assert.False(t, h.mgr.Pending())

	explicit.Dismiss()
	h.view.move(2)
	h.clock.Advance(testDelay)
	assert.Equal(t, []string{"alpha"}, h.targets())
}

func TestCloseCallbackResetsTracking(t *testing.T) {
	h := newHarness(testDelay)

	h.view.move(1)
	h.clock.Advance(testDelay)
	popup := h.presenter.current
	require.NotNil(t, popup)

	// User closes the popup (Esc) while the pointer stays on alpha.
	popup.Dismiss()
	_, tracked := h.mgr.Tracked(1)
	assert.False(t, tracked)

	h.view.move(2)
	assert.True(t, h.mgr.Pending())
	h.clock.Advance(testDelay)
	assert.Equal(t, []string{"alpha", "alpha"}, h.targets())
}

func TestCloseCallbackRunsOnce(t *testing.T) {
	h := newHarness(testDelay)

	h.view.move(1)
	h.clock.Advance(testDelay)
	popup := h.presenter.current
	onClose := popup.onClose

	popup.Dismiss()
	h.view.move(2)
	require.True(t, h.mgr.Pending())

	// A second invocation of the stale callback must not wipe the new intent.
	onClose()
	tracked, ok := h.mgr.Tracked(1)
	require.True(t, ok)
	assert.Equal(t, "alpha", tracked.ID)

	h.clock.Advance(testDelay)
	assert.Len(t, h.presenter.shows, 2)
}

func TestDisableCancelsAndDismisses(t *testing.T) {
	t.Run("pending request", func(t *testing.T) {
		h := newHarness(testDelay)

		h.view.move(1)
		h.clock.Advance(100 * time.Millisecond)
		h.mgr.SetEnabled(false)
		assert.False(t, h.mgr.Pending())

		h.mgr.SetEnabled(true)
		h.clock.Advance(time.Second)
		assert.Empty(t, h.presenter.shows, "re-enabling must not resurrect the request")
	})

	t.Run("visible popup", func(t *testing.T) {
		h := newHarness(testDelay)

		h.view.move(1)
		h.clock.Advance(testDelay)
		popup := h.presenter.current

		h.mgr.SetEnabled(false)
		assert.True(t, popup.dismissed)
		assert.Nil(t, h.presenter.current)
	})

	t.Run("explicit popup survives", func(t *testing.T) {
		h := newHarness(testDelay)

		explicit := h.presenter.showExplicit()
		h.mgr.SetEnabled(false)
		assert.False(t, explicit.dismissed)
	})
}

func TestSetEnabledWalksViewports(t *testing.T) {
	clock := loop.NewVirtual()
	presenter := &fakePresenter{clock: clock}
	session := &fakeSession{resolver: newFakeResolver(), presenter: presenter}
	source := &fakeSource{}
	early := source.open(newFakeViewport(1, session))

	mgr := NewManager(source, clock, WithDelay(testDelay))
	assert.Empty(t, early.listeners, "disabled manager does not listen")

	mgr.SetEnabled(true)
	assert.Len(t, early.listeners, 1)
	mgr.SetEnabled(true)
	assert.Len(t, early.listeners, 1, "re-enabling does not double-attach")

	late := source.open(newFakeViewport(2, session))
	assert.Len(t, late.listeners, 1, "viewports created while enabled get a listener")

	mgr.SetEnabled(false)
	assert.Empty(t, early.listeners)
	assert.Empty(t, late.listeners)

	source.open(newFakeViewport(3, session))
	v3, _ := source.Lookup(3)
	assert.Empty(t, v3.(*fakeViewport).listeners)

	early.move(1)
	clock.Advance(time.Second)
	assert.Empty(t, presenter.shows)
}

func TestViewportWithoutSessionIgnored(t *testing.T) {
	h := newHarness(testDelay)
	orphan := h.source.open(newFakeViewport(9, nil))

	h.view.move(1)
	orphan.move(21)
	h.clock.Advance(time.Second)

	assert.Equal(t, []string{"alpha"}, h.targets(), "orphan event neither abandons nor schedules")
}

func TestViewportDestroyedPurgesState(t *testing.T) {
	t.Run("pending", func(t *testing.T) {
		h := newHarness(testDelay)

		h.view.move(1)
		h.source.close(1)
		assert.False(t, h.mgr.Pending())
		_, tracked := h.mgr.Tracked(1)
		assert.False(t, tracked)

		h.clock.Advance(time.Second)
		assert.Empty(t, h.presenter.shows)
	})

	t.Run("shown", func(t *testing.T) {
		h := newHarness(testDelay)
		otherPresenter := &fakePresenter{clock: h.clock}
		other := h.source.open(newFakeViewport(2, &fakeSession{
			resolver:  newFakeResolver(),
			presenter: otherPresenter,
		}))

		h.view.move(1)
		h.clock.Advance(testDelay)
		h.source.close(1)
		_, tracked := h.mgr.Tracked(1)
		assert.False(t, tracked)

		other.move(21)
		h.clock.Advance(testDelay)
		require.Len(t, otherPresenter.shows, 1)
		assert.Equal(t, "delta", otherPresenter.shows[0].target.ID)
		assert.Equal(t, ViewportID(2), otherPresenter.shows[0].viewport)
		assert.False(t, h.presenter.current.dismissed, "popup of a destroyed viewport is not the manager's to close")
	})
}

func TestMultipleViewportsTrackIndependently(t *testing.T) {
	h := newHarness(testDelay)
	other := h.source.open(newFakeViewport(2, h.session))

	h.view.move(1)
	other.move(21)
	h.clock.Advance(time.Second)

	// Only one request exists at a time; the second viewport superseded it.
	assert.Equal(t, []string{"delta"}, h.targets())

	a, ok := h.mgr.Tracked(1)
	require.True(t, ok)
	assert.Equal(t, "alpha", a.ID)
	d, ok := h.mgr.Tracked(2)
	require.True(t, ok)
	assert.Equal(t, "delta", d.ID)
}

func TestDeclinedShowLeavesNoRelation(t *testing.T) {
	h := newHarness(testDelay)
	h.presenter.decline = true

	h.view.move(1)
	h.clock.Advance(testDelay)
	assert.Empty(t, h.presenter.shows)

	explicit := h.presenter.showExplicit()
	h.view.move(21)
	assert.False(t, explicit.dismissed)
	assert.False(t, h.mgr.Pending())
}

func TestCloseDetachesEverything(t *testing.T) {
	h := newHarness(testDelay)

	h.view.move(1)
	h.mgr.Close()
	assert.False(t, h.mgr.Pending())
	assert.Empty(t, h.view.listeners)

	v := h.source.open(newFakeViewport(5, h.session))
	assert.Empty(t, v.listeners)
}
