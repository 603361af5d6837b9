package state

import (
	"context"

	"github.com/Ollenmire/usdn-audit-critical/foundation/events"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/convert"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/notify"
)

// Rebase reports the result of a rebase call. The outcome of the observer
// notification is data for the caller, never a failure: by the time the
// observer runs, the divisor change has already committed.
type Rebase struct {
	Rebased    bool           `json:"rebased"`
	OldDivisor uint64         `json:"old_divisor"`
	NewDivisor uint64         `json:"new_divisor"`
	Outcome    notify.Outcome `json:"outcome"`
}

// RebaseRecord is the audit record published for every committed rebase.
type RebaseRecord struct {
	OldDivisor uint64 `json:"old_divisor"`
	NewDivisor uint64 `json:"new_divisor"`
}

// ObserverRecord is the audit record published when the observer changes.
type ObserverRecord struct {
	Observer string `json:"observer"`
}

// Rebase validates and clamps the requested divisor, commits it, then makes
// exactly one bounded notification attempt against the registered observer.
// The divisor never increases across rebases: a request above the current
// value clamps down to a no-op.
func (s *State) Rebase(ctx context.Context, requested uint64) Rebase {
	s.mu.Lock()

	old := s.db.Divisor()

	clamped := requested
	if clamped > old {
		clamped = old
	}
	if clamped < convert.MinDivisor {
		clamped = convert.MinDivisor
	}

	// A clamped request equal to the current divisor is a genuine no-op:
	// no state change and no notification.
	if clamped == old {
		s.mu.Unlock()
		return Rebase{Rebased: false, OldDivisor: old, NewDivisor: old, Outcome: notify.None()}
	}

	// Commit before notifying. The observer runs outside the lock against
	// fully committed state; nothing it does can undo the divisor change.
	s.db.ApplyRebase(clamped)
	observer := s.observer

	s.mu.Unlock()

	s.evHandler("state: rebase: divisor[%d -> %d]", old, clamped)
	s.publish(events.KindRebase, RebaseRecord{OldDivisor: old, NewDivisor: clamped})

	outcome := notify.Run(ctx, observer, old, clamped)
	if outcome.Trapped() {
		s.evHandler("state: rebase: observer trapped: %s", outcome.Reason)
	}

	return Rebase{Rebased: true, OldDivisor: old, NewDivisor: clamped, Outcome: outcome}
}

// SetObserver replaces the component notified on future rebases. A nil
// observer disables notifications.
func (s *State) SetObserver(observer notify.Observer) {
	s.mu.Lock()
	s.observer = observer
	s.mu.Unlock()

	name := describeObserver(observer)
	s.evHandler("state: setobserver: observer[%s]", name)
	s.publish(events.KindObserver, ObserverRecord{Observer: name})
}

// Observer returns the currently registered observer.
func (s *State) Observer() notify.Observer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.observer
}

// describeObserver produces the audit identity for an observer.
func describeObserver(observer notify.Observer) string {
	if observer == nil {
		return "none"
	}

	if o, ok := observer.(interface{ URL() string }); ok {
		return o.URL()
	}

	return "custom"
}
