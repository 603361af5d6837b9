// Package database maintains the in memory share ledger: per account share
// balances, the total share count, and the global divisor. Every mutation is
// applied atomically under a single lock so callers only ever observe fully
// committed state.
package database

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/convert"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/genesis"
	"github.com/holiman/uint256"
)

// Set of error variables for ledger operations.
var (
	ErrInvalidRecipient          = errors.New("recipient is the null identity")
	ErrInvalidSender             = errors.New("sender is the null identity")
	ErrInsufficientBalance       = errors.New("insufficient token balance")
	ErrInsufficientSharesBalance = errors.New("insufficient shares balance")
)

// TransferRecord describes a single balance affecting mutation for the audit
// stream. Mint records carry the null identity as FromID, burn records carry
// it as ToID.
type TransferRecord struct {
	FromID AccountID    `json:"from"`
	ToID   AccountID    `json:"to"`
	Tokens *uint256.Int `json:"tokens"`
}

// Database manages the share balances for all accounts in the ledger.
type Database struct {
	mu sync.RWMutex

	genesis     genesis.Genesis
	accounts    map[AccountID]Account
	totalShares *uint256.Int
	divisor     uint64
}

// New constructs a new database, starts the divisor at its maximum value and
// mints the account balances from the genesis information.
func New(genesis genesis.Genesis) (*Database, error) {
	db := Database{
		genesis:     genesis,
		accounts:    make(map[AccountID]Account),
		totalShares: new(uint256.Int),
		divisor:     convert.MaxDivisor,
	}

	// Mint the genesis balances so founders hold tokens at startup.
	for accountStr, tokens := range genesis.Balances {
		accountID, err := ToAccountID(accountStr)
		if err != nil {
			return nil, err
		}

		if _, err := db.Mint(accountID, uint256.NewInt(tokens)); err != nil {
			return nil, fmt.Errorf("minting genesis balance for %s: %w", accountID, err)
		}
	}

	return &db, nil
}

// Mint converts the token amount to shares under the current divisor and
// credits the account.
func (db *Database) Mint(to AccountID, tokens *uint256.Int) (TransferRecord, error) {
	if to.IsZero() {
		return TransferRecord{}, ErrInvalidRecipient
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	shares, err := convert.TokensToShares(tokens, db.divisor)
	if err != nil {
		return TransferRecord{}, err
	}

	// Every account balance is bounded by totalShares, so checking the
	// aggregate here also protects the account credit from wrapping. Abort
	// before any mutation.
	total, carry := new(uint256.Int).AddOverflow(db.totalShares, shares)
	if carry {
		return TransferRecord{}, convert.ErrOverflow
	}

	db.credit(to, shares)
	db.totalShares = total

	return TransferRecord{FromID: ZeroAccountID, ToID: to, Tokens: tokens.Clone()}, nil
}

// Transfer moves a token denominated amount between two accounts. The debit
// is clamped to the sender's full share balance when rounding would leave
// unmovable dust behind.
func (db *Database) Transfer(from AccountID, to AccountID, tokens *uint256.Int) (TransferRecord, error) {
	if from.IsZero() {
		return TransferRecord{}, ErrInvalidSender
	}
	if to.IsZero() {
		return TransferRecord{}, ErrInvalidRecipient
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	shares, err := db.sharesForDebit(from, tokens)
	if err != nil {
		return TransferRecord{}, err
	}

	db.debit(from, shares)
	db.credit(to, shares)

	return TransferRecord{FromID: from, ToID: to, Tokens: tokens.Clone()}, nil
}

// Burn removes a token denominated amount from the account and from the
// total share count, using the same dust sweep policy as Transfer.
func (db *Database) Burn(from AccountID, tokens *uint256.Int) (TransferRecord, error) {
	if from.IsZero() {
		return TransferRecord{}, ErrInvalidSender
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	shares, err := db.sharesForDebit(from, tokens)
	if err != nil {
		return TransferRecord{}, err
	}

	db.debit(from, shares)
	db.totalShares = new(uint256.Int).Sub(db.totalShares, shares)

	return TransferRecord{FromID: from, ToID: ZeroAccountID, Tokens: tokens.Clone()}, nil
}

// TransferShares moves an exact share amount between two accounts, bypassing
// the token rounding entirely.
func (db *Database) TransferShares(from AccountID, to AccountID, shares *uint256.Int) (TransferRecord, error) {
	if from.IsZero() {
		return TransferRecord{}, ErrInvalidSender
	}
	if to.IsZero() {
		return TransferRecord{}, ErrInvalidRecipient
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if db.sharesOf(from).Lt(shares) {
		return TransferRecord{}, ErrInsufficientSharesBalance
	}

	db.debit(from, shares)
	db.credit(to, shares)

	tokens, err := convert.SharesToTokens(shares, db.divisor, convert.Down)
	if err != nil {
		return TransferRecord{}, err
	}

	return TransferRecord{FromID: from, ToID: to, Tokens: tokens}, nil
}

// BurnShares removes an exact share amount from the account and from the
// total share count.
func (db *Database) BurnShares(from AccountID, shares *uint256.Int) (TransferRecord, error) {
	if from.IsZero() {
		return TransferRecord{}, ErrInvalidSender
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if db.sharesOf(from).Lt(shares) {
		return TransferRecord{}, ErrInsufficientSharesBalance
	}

	db.debit(from, shares)
	db.totalShares = new(uint256.Int).Sub(db.totalShares, shares)

	tokens, err := convert.SharesToTokens(shares, db.divisor, convert.Down)
	if err != nil {
		return TransferRecord{}, err
	}

	return TransferRecord{FromID: from, ToID: ZeroAccountID, Tokens: tokens}, nil
}

// ApplyRebase swaps the divisor in O(1), rescaling every projected balance at
// once. Validation and clamping belong to the state layer; the database only
// records the committed value.
func (db *Database) ApplyRebase(divisor uint64) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.divisor = divisor
}

// =============================================================================

// sharesForDebit computes the share amount backing a token denominated debit.
// The caller must hold the write lock.
func (db *Database) sharesForDebit(from AccountID, tokens *uint256.Int) (*uint256.Int, error) {
	fromShares := db.sharesOf(from)

	balance, err := convert.SharesToTokens(fromShares, db.divisor, convert.Down)
	if err != nil {
		return nil, err
	}
	if balance.Lt(tokens) {
		return nil, ErrInsufficientBalance
	}

	shares, err := convert.TokensToShares(tokens, db.divisor)
	if err != nil {
		return nil, err
	}

	// Rounding can ask for more shares than the account actually holds.
	// Sweep the full remaining balance instead of stranding dust.
	if fromShares.Lt(shares) {
		shares = fromShares
	}

	return shares, nil
}

// credit adds shares to the account, creating the record on first use. The
// caller must hold the write lock.
func (db *Database) credit(to AccountID, shares *uint256.Int) {
	account, exists := db.accounts[to]
	if !exists {
		account = newAccount(to)
	}

	account.Shares = new(uint256.Int).Add(account.Shares, shares)
	db.accounts[to] = account
}

// debit removes shares from the account. Accounts drained to zero persist.
// The caller must hold the write lock.
func (db *Database) debit(from AccountID, shares *uint256.Int) {
	account, exists := db.accounts[from]
	if !exists {
		account = newAccount(from)
	}

	account.Shares = new(uint256.Int).Sub(account.Shares, shares)
	db.accounts[from] = account
}

// sharesOf returns the share balance for the account. The caller must hold
// at least the read lock.
func (db *Database) sharesOf(account AccountID) *uint256.Int {
	if acct, exists := db.accounts[account]; exists {
		return acct.Shares.Clone()
	}
	return new(uint256.Int)
}

// =============================================================================

// SharesOf returns the exact share balance for the account.
func (db *Database) SharesOf(account AccountID) *uint256.Int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.sharesOf(account)
}

// BalanceOf returns the token balance projected through the current divisor.
func (db *Database) BalanceOf(account AccountID) *uint256.Int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	tokens, err := convert.SharesToTokens(db.sharesOf(account), db.divisor, convert.Down)
	if err != nil {
		return new(uint256.Int)
	}

	return tokens
}

// TotalShares returns the total number of shares in existence.
func (db *Database) TotalShares() *uint256.Int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.totalShares.Clone()
}

// TotalSupply returns the token supply projected through the current divisor.
func (db *Database) TotalSupply() *uint256.Int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	tokens, err := convert.SharesToTokens(db.totalShares, db.divisor, convert.Down)
	if err != nil {
		return new(uint256.Int)
	}

	return tokens
}

// Divisor returns the current global divisor.
func (db *Database) Divisor() uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.divisor
}

// CopyAccounts makes a copy of the current accounts in the database.
func (db *Database) CopyAccounts() map[AccountID]Account {
	db.mu.RLock()
	defer db.mu.RUnlock()

	accounts := make(map[AccountID]Account)
	for accountID, account := range db.accounts {
		accounts[accountID] = Account{
			AccountID: account.AccountID,
			Shares:    account.Shares.Clone(),
		}
	}
	return accounts
}
