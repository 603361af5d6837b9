package state_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/convert"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/database"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/genesis"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/notify"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/state"
	"github.com/holiman/uint256"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const accountA = database.AccountID("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")

func newState(t *testing.T, observer notify.Observer) *state.State {
	s, err := state.New(state.Config{
		Genesis:  genesis.Genesis{},
		Observer: observer,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
	}
	return s
}

func TestRebase(t *testing.T) {
	t.Log("Given the need to rescale supply through a rebase.")
	{
		t.Logf("\tTest 0:\tWhen halving the divisor after a mint.")
		{
			s := newState(t, nil)

			if _, err := s.Mint(accountA, uint256.NewInt(1_000)); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mint: %v", failed, err)
			}

			want := new(uint256.Int).Mul(uint256.NewInt(1_000), uint256.NewInt(convert.MaxDivisor))
			if !s.SharesOf(accountA).Eq(want) {
				t.Fatalf("\t%s\tTest 0:\tShould back the mint with 1000*MaxDivisor shares.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould back the mint with 1000*MaxDivisor shares.", success)

			result := s.Rebase(context.Background(), convert.MaxDivisor/2)

			if !result.Rebased {
				t.Errorf("\t%s\tTest 0:\tShould report the rebase committed.", failed)
			} else {
				t.Logf("\t%s\tTest 0:\tShould report the rebase committed.", success)
			}

			if result.OldDivisor != convert.MaxDivisor {
				t.Errorf("\t%s\tTest 0:\tShould report the old divisor, got %d.", failed, result.OldDivisor)
			} else {
				t.Logf("\t%s\tTest 0:\tShould report the old divisor.", success)
			}

			if got := s.BalanceOf(accountA).Uint64(); got != 2_000 {
				t.Errorf("\t%s\tTest 0:\tShould double the projected balance, got %d.", failed, got)
			} else {
				t.Logf("\t%s\tTest 0:\tShould double the projected balance.", success)
			}

			if result.Outcome.Status != notify.StatusNone {
				t.Errorf("\t%s\tTest 0:\tShould report the neutral outcome without an observer, got %q.", failed, result.Outcome.Status)
			} else {
				t.Logf("\t%s\tTest 0:\tShould report the neutral outcome without an observer.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen the observer always fails.")
		{
			obs := notify.ObserverFunc(func(ctx context.Context, old, new uint64, meter *notify.Meter) ([]byte, error) {
				return nil, errors.New("hostile observer")
			})

			s := newState(t, obs)

			if _, err := s.Mint(accountA, uint256.NewInt(1_000)); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to mint: %v", failed, err)
			}

			result := s.Rebase(context.Background(), convert.MaxDivisor/2)

			if !result.Rebased || s.Divisor() != convert.MaxDivisor/2 {
				t.Errorf("\t%s\tTest 1:\tShould commit the rebase despite the observer.", failed)
			} else {
				t.Logf("\t%s\tTest 1:\tShould commit the rebase despite the observer.", success)
			}

			if !result.Outcome.Trapped() {
				t.Errorf("\t%s\tTest 1:\tShould report the observer as trapped, got %q.", failed, result.Outcome.Status)
			} else {
				t.Logf("\t%s\tTest 1:\tShould report the observer as trapped.", success)
			}

			if got := s.BalanceOf(accountA).Uint64(); got != 2_000 {
				t.Errorf("\t%s\tTest 1:\tShould still rescale the balance, got %d.", failed, got)
			} else {
				t.Logf("\t%s\tTest 1:\tShould still rescale the balance.", success)
			}
		}

		t.Logf("\tTest 2:\tWhen the observer exhausts its budget.")
		{
			obs := notify.ObserverFunc(func(ctx context.Context, old, new uint64, meter *notify.Meter) ([]byte, error) {
				for {
					meter.Charge(1)
				}
			})

			s := newState(t, obs)
			result := s.Rebase(context.Background(), convert.MinDivisor)

			if !result.Rebased || s.Divisor() != convert.MinDivisor {
				t.Errorf("\t%s\tTest 2:\tShould commit the rebase despite budget exhaustion.", failed)
			} else {
				t.Logf("\t%s\tTest 2:\tShould commit the rebase despite budget exhaustion.", success)
			}

			if !result.Outcome.Trapped() {
				t.Errorf("\t%s\tTest 2:\tShould report the observer as trapped, got %q.", failed, result.Outcome.Status)
			} else {
				t.Logf("\t%s\tTest 2:\tShould report the observer as trapped.", success)
			}
		}
	}
}

func TestRebaseClamping(t *testing.T) {
	t.Log("Given the need to keep the divisor monotonically non-increasing.")
	{
		t.Logf("\tTest 0:\tWhen requesting a divisor above the current value.")
		{
			s := newState(t, nil)

			result := s.Rebase(context.Background(), convert.MaxDivisor+1)
			if result.Rebased || s.Divisor() != convert.MaxDivisor {
				t.Errorf("\t%s\tTest 0:\tShould clamp down to a no-op.", failed)
			} else {
				t.Logf("\t%s\tTest 0:\tShould clamp down to a no-op.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen requesting the current divisor.")
		{
			s := newState(t, nil)

			result := s.Rebase(context.Background(), convert.MaxDivisor)
			if result.Rebased {
				t.Errorf("\t%s\tTest 1:\tShould report a no-op.", failed)
			} else {
				t.Logf("\t%s\tTest 1:\tShould report a no-op.", success)
			}
		}

		t.Logf("\tTest 2:\tWhen requesting a divisor below the minimum on the first call.")
		{
			s := newState(t, nil)

			result := s.Rebase(context.Background(), convert.MinDivisor-1)
			if !result.Rebased || s.Divisor() != convert.MinDivisor {
				t.Errorf("\t%s\tTest 2:\tShould clamp to exactly MinDivisor, got %d.", failed, s.Divisor())
			} else {
				t.Logf("\t%s\tTest 2:\tShould clamp to exactly MinDivisor.", success)
			}
		}

		t.Logf("\tTest 3:\tWhen rebasing repeatedly.")
		{
			s := newState(t, nil)

			divisors := []uint64{convert.MaxDivisor / 2, convert.MaxDivisor / 4, convert.MaxDivisor / 3}
			last := convert.MaxDivisor
			for _, d := range divisors {
				s.Rebase(context.Background(), d)
				if s.Divisor() > last {
					t.Fatalf("\t%s\tTest 3:\tShould never raise the divisor, got %d after %d.", failed, s.Divisor(), last)
				}
				last = s.Divisor()
			}
			t.Logf("\t%s\tTest 3:\tShould never raise the divisor.", success)
		}
	}
}

func TestSetObserver(t *testing.T) {
	t.Log("Given the need to replace the rebase observer at runtime.")
	{
		t.Logf("\tTest 0:\tWhen swapping in an observer that records the payload.")
		{
			s := newState(t, nil)

			var gotOld, gotNew uint64
			obs := notify.ObserverFunc(func(ctx context.Context, old, new uint64, meter *notify.Meter) ([]byte, error) {
				gotOld, gotNew = old, new
				return []byte("ok"), nil
			})
			s.SetObserver(obs)

			if s.Observer() == nil {
				t.Fatalf("\t%s\tTest 0:\tShould report the registered observer.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould report the registered observer.", success)

			result := s.Rebase(context.Background(), convert.MaxDivisor/2)
			if result.Outcome.Status != notify.StatusOK {
				t.Errorf("\t%s\tTest 0:\tShould get a successful outcome, got %q.", failed, result.Outcome.Status)
			} else {
				t.Logf("\t%s\tTest 0:\tShould get a successful outcome.", success)
			}

			if gotOld != convert.MaxDivisor || gotNew != convert.MaxDivisor/2 {
				t.Errorf("\t%s\tTest 0:\tShould pass the old and new divisor, got %d -> %d.", failed, gotOld, gotNew)
			} else {
				t.Logf("\t%s\tTest 0:\tShould pass the old and new divisor.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen clearing the observer.")
		{
			s := newState(t, notify.ObserverFunc(func(ctx context.Context, old, new uint64, meter *notify.Meter) ([]byte, error) {
				return nil, errors.New("should not run")
			}))

			s.SetObserver(nil)

			result := s.Rebase(context.Background(), convert.MaxDivisor/2)
			if result.Outcome.Status != notify.StatusNone {
				t.Errorf("\t%s\tTest 1:\tShould get the neutral outcome, got %q.", failed, result.Outcome.Status)
			} else {
				t.Logf("\t%s\tTest 1:\tShould get the neutral outcome.", success)
			}
		}
	}
}
