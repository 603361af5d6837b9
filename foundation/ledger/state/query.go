package state

import (
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/convert"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/database"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/genesis"
	"github.com/holiman/uint256"
)

// QueryAccounts returns a copy of the accounts in the database.
func (s *State) QueryAccounts() map[database.AccountID]database.Account {
	return s.db.CopyAccounts()
}

// BalanceOf returns the token balance projected through the current divisor.
func (s *State) BalanceOf(account database.AccountID) *uint256.Int {
	return s.db.BalanceOf(account)
}

// SharesOf returns the exact share balance for the account.
func (s *State) SharesOf(account database.AccountID) *uint256.Int {
	return s.db.SharesOf(account)
}

// TotalSupply returns the token supply projected through the current divisor.
func (s *State) TotalSupply() *uint256.Int {
	return s.db.TotalSupply()
}

// TotalShares returns the total number of shares in existence.
func (s *State) TotalShares() *uint256.Int {
	return s.db.TotalShares()
}

// Divisor returns the current global divisor.
func (s *State) Divisor() uint64 {
	return s.db.Divisor()
}

// MaxTokens returns the supply ceiling under the current divisor.
func (s *State) MaxTokens() *uint256.Int {
	return convert.MaxTokens(s.db.Divisor())
}

// ConvertToShares returns the shares backing a token amount under the
// current divisor.
func (s *State) ConvertToShares(tokens *uint256.Int) (*uint256.Int, error) {
	return convert.TokensToShares(tokens, s.db.Divisor())
}

// ConvertToTokens returns the token projection of a share amount under the
// current divisor, rounded to the closest token.
func (s *State) ConvertToTokens(shares *uint256.Int) (*uint256.Int, error) {
	return convert.SharesToTokens(shares, s.db.Divisor(), convert.Closest)
}

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}
