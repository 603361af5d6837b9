// Package state is the core API for the elastic-supply ledger and implements
// all the business rules and processing.
package state

import (
	"sync"

	"github.com/Ollenmire/usdn-audit-critical/foundation/events"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/database"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/genesis"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/notify"
	"github.com/holiman/uint256"
)

// EventHandler defines a function that is called when events
// occur in the processing of ledger operations.
type EventHandler func(v string, args ...any)

// Config represents the configuration required to start the ledger.
type Config struct {
	Genesis   genesis.Genesis
	Observer  notify.Observer
	Evts      *events.Events
	EvHandler EventHandler
}

// State manages the ledger database and the rebase observer.
type State struct {
	mu sync.Mutex

	evHandler EventHandler
	genesis   genesis.Genesis
	observer  notify.Observer

	db   *database.Database
	evts *events.Events
}

// New constructs a new ledger state for data management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// Create the database and mint the genesis balances.
	db, err := database.New(cfg.Genesis)
	if err != nil {
		return nil, err
	}

	state := State{
		evHandler: ev,
		genesis:   cfg.Genesis,
		observer:  cfg.Observer,
		db:        db,
		evts:      cfg.Evts,
	}

	return &state, nil
}

// Mint converts the token amount to backing shares and credits the account.
// It returns the token amount minted.
func (s *State) Mint(to database.AccountID, tokens *uint256.Int) (*uint256.Int, error) {
	record, err := s.db.Mint(to, tokens)
	if err != nil {
		return nil, err
	}

	s.evHandler("state: mint: to[%s] tokens[%s]", to, tokens)
	s.publish(events.KindTransfer, record)

	return record.Tokens, nil
}

// Transfer moves a token denominated amount between two accounts.
func (s *State) Transfer(from database.AccountID, to database.AccountID, tokens *uint256.Int) error {
	record, err := s.db.Transfer(from, to, tokens)
	if err != nil {
		return err
	}

	s.evHandler("state: transfer: from[%s] to[%s] tokens[%s]", from, to, tokens)
	s.publish(events.KindTransfer, record)

	return nil
}

// Burn removes a token denominated amount from the account and the supply.
func (s *State) Burn(from database.AccountID, tokens *uint256.Int) error {
	record, err := s.db.Burn(from, tokens)
	if err != nil {
		return err
	}

	s.evHandler("state: burn: from[%s] tokens[%s]", from, tokens)
	s.publish(events.KindTransfer, record)

	return nil
}

// TransferShares moves an exact share amount between two accounts.
func (s *State) TransferShares(from database.AccountID, to database.AccountID, shares *uint256.Int) error {
	record, err := s.db.TransferShares(from, to, shares)
	if err != nil {
		return err
	}

	s.evHandler("state: transfershares: from[%s] to[%s] shares[%s]", from, to, shares)
	s.publish(events.KindTransfer, record)

	return nil
}

// BurnShares removes an exact share amount from the account and the supply.
func (s *State) BurnShares(from database.AccountID, shares *uint256.Int) error {
	record, err := s.db.BurnShares(from, shares)
	if err != nil {
		return err
	}

	s.evHandler("state: burnshares: from[%s] shares[%s]", from, shares)
	s.publish(events.KindTransfer, record)

	return nil
}

// publish sends an audit record to any registered listener.
func (s *State) publish(kind string, data any) {
	if s.evts != nil {
		s.evts.Publish(kind, data)
	}
}
