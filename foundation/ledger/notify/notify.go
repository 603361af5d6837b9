// Package notify invokes an untrusted external observer with a fixed work
// budget and traps every failure mode so the calling operation can never be
// blocked or failed by the observer. This is the containment boundary for the
// rebase notification: the divisor change must commit whether or not the
// observer behaves.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Budget is the fixed amount of work an observer may perform per
// notification. It is set at initialization and is not configurable.
const Budget uint64 = 80_000

// Set of statuses for a notification attempt.
const (
	StatusNone    = "none"    // No observer is configured.
	StatusOK      = "ok"      // The observer completed within budget.
	StatusTrapped = "trapped" // The observer failed or exhausted its budget.
)

// errBudgetExhausted is the sentinel thrown by the meter when the observer
// runs out of budget. It stays unexported so observers cannot forge it, but
// Run recognizes it when recovering.
var errBudgetExhausted = errors.New("notification budget exhausted")

// Observer is the capability an external component implements to watch
// divisor changes. Implementations are untrusted: they must pay for their
// work through the meter and may fail or panic freely.
type Observer interface {
	OnRebase(ctx context.Context, oldDivisor uint64, newDivisor uint64, meter *Meter) ([]byte, error)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, oldDivisor uint64, newDivisor uint64, meter *Meter) ([]byte, error)

// OnRebase implements the Observer interface.
func (f ObserverFunc) OnRebase(ctx context.Context, oldDivisor uint64, newDivisor uint64, meter *Meter) ([]byte, error) {
	return f(ctx, oldDivisor, newDivisor, meter)
}

// =============================================================================

// Meter enforces the work budget on an observer. Charge aborts the observer
// the moment the budget runs out; Run recovers the abort and reports it as a
// trapped outcome.
type Meter struct {
	remaining uint64
}

// newMeter constructs a meter holding the full notification budget.
func newMeter() *Meter {
	return &Meter{remaining: Budget}
}

// Charge spends units from the budget. When the budget is exhausted the
// observer is terminated immediately; it cannot intercept the abort.
func (m *Meter) Charge(units uint64) {
	if units > m.remaining {
		m.remaining = 0
		panic(errBudgetExhausted)
	}
	m.remaining -= units
}

// Remaining returns the unspent portion of the budget.
func (m *Meter) Remaining() uint64 {
	return m.remaining
}

// =============================================================================

// Outcome reports how a notification attempt ended. A trapped observer is
// data, not an error: the caller's own operation has already committed. The
// observer payload marshals as 0x-prefixed hex.
type Outcome struct {
	Status string        `json:"status"`
	Data   hexutil.Bytes `json:"data,omitempty"`
	Reason string        `json:"reason,omitempty"`
}

// None returns the neutral outcome used when no observer is configured.
func None() Outcome {
	return Outcome{Status: StatusNone}
}

// Trapped reports whether the observer was terminated abnormally.
func (o Outcome) Trapped() bool {
	return o.Status == StatusTrapped
}

// Run invokes the observer exactly once with a fresh budget. Explicit
// failure, panic, and budget exhaustion are all folded into a trapped
// outcome; nothing the observer does propagates to the caller.
func Run(ctx context.Context, obs Observer, oldDivisor uint64, newDivisor uint64) (outcome Outcome) {
	if obs == nil {
		return None()
	}

	defer func() {
		if rec := recover(); rec != nil {
			reason := fmt.Sprintf("%v", rec)
			if err, ok := rec.(error); ok && errors.Is(err, errBudgetExhausted) {
				reason = errBudgetExhausted.Error()
			}
			outcome = Outcome{Status: StatusTrapped, Reason: reason}
		}
	}()

	data, err := obs.OnRebase(ctx, oldDivisor, newDivisor, newMeter())
	if err != nil {
		return Outcome{Status: StatusTrapped, Reason: err.Error()}
	}

	return Outcome{Status: StatusOK, Data: data}
}
