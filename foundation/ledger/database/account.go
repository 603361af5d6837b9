package database

import (
	"crypto/ecdsa"
	"errors"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// ZeroAccountID is the null identity. It is never a valid credit or debit
// target; it marks the supply side of mint and burn records.
const ZeroAccountID = AccountID("0x0000000000000000000000000000000000000000")

// Account represents information stored in the database for an individual
// account. Shares are the exact internal unit; the token balance is derived
// through the divisor.
type Account struct {
	AccountID AccountID
	Shares    *uint256.Int
}

// newAccount constructs a new account value for use.
func newAccount(accountID AccountID) Account {
	return Account{
		AccountID: accountID,
		Shares:    new(uint256.Int),
	}
}

// =============================================================================

// AccountID represents an account id that holds shares in the ledger.
type AccountID string

// ToAccountID converts a hex-encoded string to an account and validates the
// hex-encoded string is formatted correctly.
func ToAccountID(hex string) (AccountID, error) {
	a := AccountID(hex)
	if !a.IsAccountID() {
		return "", errors.New("invalid account format")
	}

	return a, nil
}

// PublicKeyToAccountID converts the public key to an account value.
func PublicKeyToAccountID(pk ecdsa.PublicKey) AccountID {
	return AccountID(crypto.PubkeyToAddress(pk).String())
}

// IsAccountID verifies whether the underlying data represents a valid
// hex-encoded account.
func (a AccountID) IsAccountID() bool {
	const addressLength = 20

	if has0xPrefix(a) {
		a = a[2:]
	}

	return len(a) == 2*addressLength && isHex(a)
}

// IsZero reports whether the account is the null identity.
func (a AccountID) IsZero() bool {
	return a == ZeroAccountID || a == ""
}

// =============================================================================

// has0xPrefix validates the account starts with a 0x.
func has0xPrefix(a AccountID) bool {
	return len(a) >= 2 && a[0] == '0' && (a[1] == 'x' || a[1] == 'X')
}

// isHex validates whether each byte is valid hexadecimal string.
func isHex(a AccountID) bool {
	if len(a)%2 != 0 {
		return false
	}

	for _, c := range []byte(a) {
		if !isHexCharacter(c) {
			return false
		}
	}

	return true
}

// isHexCharacter returns bool of c being a valid hexadecimal.
func isHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
