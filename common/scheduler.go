package common

import "time"

// Handle identifies a pending timer or animation frame. The zero Handle is
// never returned by a scheduler and is safe to cancel.
type Handle int

// Scheduler is the only source of deferred work in the kiosk. Callbacks are
// always invoked on the caller's thread, one at a time.
type Scheduler interface {
	// After runs fn once d has elapsed.
	After(d time.Duration, fn func()) Handle
	// Cancel drops a pending timer. Cancelling a fired or unknown handle is a no-op.
	Cancel(h Handle)
	// RequestFrame runs fn before the next repaint with a millisecond timestamp.
	RequestFrame(fn func(timestamp float64)) Handle
	// CancelFrame drops a pending frame callback.
	CancelFrame(h Handle)
}
