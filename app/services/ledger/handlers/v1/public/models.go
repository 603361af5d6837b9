package public

import (
	"fmt"

	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/database"
	"github.com/holiman/uint256"
)

type actBalance struct {
	Account string `json:"account"`
	Balance string `json:"balance"`
	Shares  string `json:"shares"`
}

type supply struct {
	TotalSupply string `json:"total_supply"`
	TotalShares string `json:"total_shares"`
	Divisor     uint64 `json:"divisor"`
	MaxTokens   string `json:"max_tokens"`
}

type conversion struct {
	Amount   string `json:"amount"`
	ToShares string `json:"to_shares"`
	ToTokens string `json:"to_tokens"`
	Divisor  uint64 `json:"divisor"`
}

type transferRequest struct {
	From   string `json:"from" validate:"required"`
	To     string `json:"to" validate:"required"`
	Tokens string `json:"tokens" validate:"required"`
	Shares bool   `json:"shares"`
}

// parse validates the account ids and the amount carried by the request.
func (req transferRequest) parse() (database.AccountID, database.AccountID, *uint256.Int, error) {
	from, err := database.ToAccountID(req.From)
	if err != nil {
		return "", "", nil, fmt.Errorf("parsing from account: %w", err)
	}

	to, err := database.ToAccountID(req.To)
	if err != nil {
		return "", "", nil, fmt.Errorf("parsing to account: %w", err)
	}

	amount, err := uint256.FromDecimal(req.Tokens)
	if err != nil {
		return "", "", nil, fmt.Errorf("parsing amount: %w", err)
	}

	return from, to, amount, nil
}

type burnRequest struct {
	Holder string `json:"holder" validate:"required"`
	Tokens string `json:"tokens" validate:"required"`
	Shares bool   `json:"shares"`
}

// parse validates the account id and the amount carried by the request.
func (req burnRequest) parse() (database.AccountID, *uint256.Int, error) {
	holder, err := database.ToAccountID(req.Holder)
	if err != nil {
		return "", nil, fmt.Errorf("parsing holder account: %w", err)
	}

	amount, err := uint256.FromDecimal(req.Tokens)
	if err != nil {
		return "", nil, fmt.Errorf("parsing amount: %w", err)
	}

	return holder, amount, nil
}
