// Package commands contains the functionality for the set of commands
// currently supported by the admin tooling.
package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Default hosts for the ledger service.
const (
	publicURL  = "http://localhost:8080"
	privateURL = "http://localhost:9080"
)

// Help prints the usage information.
func Help() error {
	fmt.Println("admin <command> [arguments]")
	fmt.Println("  bals     [account]        list balances")
	fmt.Println("  supply                    show supply, divisor and ceiling")
	fmt.Println("  mint     <account> <amt>  mint tokens to an account")
	fmt.Println("  rebase   <divisor>        lower the divisor")
	fmt.Println("  observer [url]            set or clear the rebase observer")
	return nil
}

// get performs a GET request and decodes the JSON response into v.
func get(url string, v any) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, data)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// post performs a POST request with a JSON payload and decodes the response
// into v.
func post(url string, payload any, v any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, data)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
