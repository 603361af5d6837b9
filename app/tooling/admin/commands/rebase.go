package commands

import (
	"errors"
	"fmt"
	"strconv"
)

// Rebase lowers the divisor through the private API and prints the result,
// including the observer outcome.
func Rebase(args []string) error {
	if len(args) != 3 {
		return errors.New("usage: admin rebase <divisor>")
	}

	divisor, err := strconv.ParseUint(args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("parsing divisor: %w", err)
	}

	payload := struct {
		Divisor uint64 `json:"divisor"`
	}{
		Divisor: divisor,
	}

	var result struct {
		Rebased    bool   `json:"rebased"`
		OldDivisor uint64 `json:"old_divisor"`
		NewDivisor uint64 `json:"new_divisor"`
		Outcome    struct {
			Status string `json:"status"`
			Reason string `json:"reason,omitempty"`
		} `json:"outcome"`
	}
	if err := post(privateURL+"/v1/rebase", payload, &result); err != nil {
		return err
	}

	fmt.Printf("Rebased:  %v\n", result.Rebased)
	fmt.Printf("Divisor:  %d -> %d\n", result.OldDivisor, result.NewDivisor)
	fmt.Printf("Observer: %s", result.Outcome.Status)
	if result.Outcome.Reason != "" {
		fmt.Printf(" (%s)", result.Outcome.Reason)
	}
	fmt.Println()

	return nil
}

// Mint credits an account with newly created tokens through the private API.
func Mint(args []string) error {
	if len(args) != 4 {
		return errors.New("usage: admin mint <account> <tokens>")
	}

	payload := struct {
		To     string `json:"to"`
		Tokens string `json:"tokens"`
	}{
		To:     args[2],
		Tokens: args[3],
	}

	var result struct {
		Status string `json:"status"`
		Minted string `json:"minted"`
	}
	if err := post(privateURL+"/v1/mint", payload, &result); err != nil {
		return err
	}

	fmt.Printf("Status: %s  Minted: %s\n", result.Status, result.Minted)
	return nil
}

// Observer sets or clears the rebase observer through the private API.
func Observer(args []string) error {
	var url string
	if len(args) == 3 {
		url = args[2]
	}

	payload := struct {
		URL string `json:"url"`
	}{
		URL: url,
	}

	var result struct {
		Status string `json:"status"`
	}
	if err := post(privateURL+"/v1/observer", payload, &result); err != nil {
		return err
	}

	fmt.Printf("Status: %s\n", result.Status)
	return nil
}
