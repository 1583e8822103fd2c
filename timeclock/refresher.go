package timeclock

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultInterval is the poll period between automatic refreshes.
	DefaultInterval = 30 * time.Second
	// DefaultTimeout bounds a single status request. A timed-out request
	// counts as a transient failure, not a state change.
	DefaultTimeout = 10 * time.Second
)

// RefresherOptions tune a Refresher. Zero values fall back to defaults.
type RefresherOptions struct {
	Interval time.Duration
	Timeout  time.Duration
	// OnChange runs after a snapshot is replaced, outside the internal
	// lock. It must not call back into the Refresher synchronously in a
	// way that blocks.
	OnChange func(Session)
}

// Refresher is the single coordinator for session state reads. Both the
// poll ticker and manual refresh triggers go through Refresh, which stamps
// every request with a monotonically increasing sequence number and
// discards any response that resolves after a later request was issued.
// That keeps overlapping refreshes (tick racing a manual trigger) from
// tearing the snapshot: the later-issued request wins.
type Refresher struct {
	source   StatusSource
	log      *slog.Logger
	interval time.Duration
	timeout  time.Duration
	onChange func(Session)

	mu       sync.Mutex
	seq      uint64
	inflight int
	session  Session
}

// NewRefresher builds a Refresher around a status source. The snapshot
// starts at NoSession until the first refresh resolves.
func NewRefresher(source StatusSource, log *slog.Logger, options RefresherOptions) *Refresher {
	if log == nil {
		log = slog.Default()
	}
	if options.Interval <= 0 {
		options.Interval = DefaultInterval
	}
	if options.Timeout <= 0 {
		options.Timeout = DefaultTimeout
	}
	return &Refresher{
		source:   source,
		log:      log,
		interval: options.Interval,
		timeout:  options.Timeout,
		onChange: options.OnChange,
		session:  NoSession(),
	}
}

// Current returns the last applied session snapshot. Callers must treat the
// contained Breaks slice as read-only.
func (r *Refresher) Current() Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}

// InFlight reports whether at least one status request is outstanding.
func (r *Refresher) InFlight() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inflight > 0
}

// Run polls the status source until ctx is cancelled, refreshing once
// immediately and then on every interval tick. Cancellation clears the
// ticker; an in-flight request is not aborted, its result is discarded if
// superseded.
func (r *Refresher) Run(ctx context.Context) {
	r.Refresh(ctx)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Refresh(ctx)
		}
	}
}

// Refresh fetches the current session and applies it if this request is
// still the latest. Transport failures apply NoSession, the fail-open
// choice that keeps surfaces rendering "not clocked in" rather than
// wedging; credential failures and timeouts keep the previous snapshot,
// the former because token refresh is handled elsewhere and the latter
// because a slow backend says nothing about the session. Returns the
// snapshot in force afterwards.
func (r *Refresher) Refresh(ctx context.Context) Session {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.inflight++
	r.mu.Unlock()

	fctx, cancel := context.WithTimeout(ctx, r.timeout)
	sess, err := r.source.Status(fctx)
	// Read before cancel: afterwards fctx.Err is always non-nil.
	timedOut := err != nil && (fctx.Err() != nil || errors.Is(err, context.DeadlineExceeded))
	cancel()

	r.mu.Lock()
	r.inflight--
	if seq != r.seq {
		// A later request or an adopted action result has superseded this
		// response; discard it.
		out := r.session
		r.mu.Unlock()
		r.log.Debug("discarding stale status response", "seq", seq)
		return out
	}

	switch {
	case err == nil:
		return r.swapLocked(sess)
	case errors.Is(err, ErrAuth):
		out := r.session
		r.mu.Unlock()
		r.log.Debug("status refresh skipped, credential rejected", "error", err)
		return out
	case timedOut:
		out := r.session
		r.mu.Unlock()
		r.log.Debug("status refresh timed out, keeping snapshot", "error", err)
		return out
	default:
		r.log.Debug("status fetch failed, reading as no session", "error", err)
		return r.swapLocked(NoSession())
	}
}

// Adopt replaces the snapshot with a session returned by a successful
// action and supersedes any in-flight refresh, so a response issued before
// the action cannot overwrite the newer state.
func (r *Refresher) Adopt(sess Session) {
	r.mu.Lock()
	r.seq++
	r.swapLocked(sess)
}

// swapLocked installs sess as the snapshot and releases the lock before
// invoking the change callback.
func (r *Refresher) swapLocked(sess Session) Session {
	prev := r.session.State
	r.session = sess
	cb := r.onChange
	r.mu.Unlock()

	if prev != sess.State {
		r.log.Debug("session state changed", "from", prev, "to", sess.State)
	}
	if cb != nil {
		cb(sess)
	}
	return sess
}
