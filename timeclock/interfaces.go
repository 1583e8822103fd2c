package timeclock

import "context"

// StatusSource fetches the authoritative session for the caller's identity.
// Implementations return NoSession with a nil error when the server reports
// no open session, and classify failures with the package error sentinels.
type StatusSource interface {
	Status(ctx context.Context) (Session, error)
}

// ActionSender submits one timeclock action and returns the server's
// updated session. Failures are classified with the package error
// sentinels; the session value is meaningless when an error is returned.
type ActionSender interface {
	Send(ctx context.Context, action Action) (Session, error)
}

// Reporter receives user-facing action outcomes, the toast surface of the
// app. Implementations must be safe for concurrent use.
type Reporter interface {
	Info(msg string)
	Error(msg string)
}
