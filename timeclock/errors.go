package timeclock

import "errors"

// Error taxonomy for timeclock operations. The guard and transition errors
// are raised locally and never produce a remote call; the remaining
// sentinels classify remote failures so callers can pick a recovery path.
var (
	// ErrGuardViolation rejects clock-out while a break is open.
	ErrGuardViolation = errors.New("end the open break before clocking out")

	// ErrIllegalTransition rejects an action the current state does not admit.
	ErrIllegalTransition = errors.New("action not allowed in current state")

	// ErrConflict means the server's session diverged from the local view,
	// e.g. the shift was already opened from another device.
	ErrConflict = errors.New("session state conflict")

	// ErrUnavailable covers network failures, timeouts and 5xx responses.
	// State is left to the next successful refresh.
	ErrUnavailable = errors.New("timeclock service unavailable")

	// ErrAuth means the credential was rejected. Token refresh belongs to
	// the auth layer; status polling treats this as a no-op.
	ErrAuth = errors.New("authentication rejected")
)
