// Package hover implements automatic quick documentation on mouse hover.
//
// Manager watches pointer movement over every live viewport. When the
// pointer comes to rest on a program element whose documentation target
// differs from the one already tracked for that viewport, the manager
// schedules a single delayed request. Movement that keeps resolving to the
// same target does not restart the delay; movement to a new target replaces
// the request; movement off the text area, onto whitespace or onto nothing
// resolvable cancels it and closes the popup the manager opened.
//
// Popups opened explicitly by the user are never touched, and moving the
// pointer onto the manager's own popup leaves it open.
//
// The manager holds no locks. It must be driven from one UI loop: pointer
// listeners, timer callbacks and popup close callbacks all run there.
//
//	mgr := hover.NewManager(registry, uiLoop,
//	    hover.WithDelay(hover.DelayFromSetting(os.Getenv("KEYSTORM_QUICKDOC_DELAY_MS"))),
//	    hover.WithLogger(logger))
//	mgr.SetEnabled(true)
package hover
