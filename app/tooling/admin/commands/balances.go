package commands

import "fmt"

// Balances returns the current set of balances.
func Balances(args []string) error {
	url := publicURL + "/v1/accounts/list"
	if len(args) == 3 {
		url += "/" + args[2]
	}

	var balances []struct {
		Account string `json:"account"`
		Balance string `json:"balance"`
		Shares  string `json:"shares"`
	}
	if err := get(url, &balances); err != nil {
		return err
	}

	for _, bal := range balances {
		fmt.Printf("Account: %s  Balance: %s  Shares: %s\n", bal.Account, bal.Balance, bal.Shares)
	}

	return nil
}

// Supply prints the supply figures under the current divisor.
func Supply(args []string) error {
	var supply struct {
		TotalSupply string `json:"total_supply"`
		TotalShares string `json:"total_shares"`
		Divisor     uint64 `json:"divisor"`
		MaxTokens   string `json:"max_tokens"`
	}
	if err := get(publicURL+"/v1/supply", &supply); err != nil {
		return err
	}

	fmt.Printf("TotalSupply: %s\n", supply.TotalSupply)
	fmt.Printf("TotalShares: %s\n", supply.TotalShares)
	fmt.Printf("Divisor:     %d\n", supply.Divisor)
	fmt.Printf("MaxTokens:   %s\n", supply.MaxTokens)

	return nil
}
