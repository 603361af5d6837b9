package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/database"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

var (
	to     string
	tokens string
	shares bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send tokens to an account.",
	Run:   sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the ledger service.")
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Account receiving the tokens.")
	sendCmd.Flags().StringVarP(&tokens, "value", "v", "0", "Token amount to send.")
	sendCmd.Flags().BoolVarP(&shares, "shares", "s", false, "Send an exact share amount instead of tokens.")
}

func sendRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	from := database.PublicKeyToAccountID(privateKey.PublicKey)

	payload, err := json.Marshal(struct {
		From   string `json:"from"`
		To     string `json:"to"`
		Tokens string `json:"tokens"`
		Shares bool   `json:"shares"`
	}{
		From:   string(from),
		To:     to,
		Tokens: tokens,
		Shares: shares,
	})
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/transfer", url), "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var result struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatal(err)
	}

	if result.Error != "" {
		log.Fatal(result.Error)
	}

	fmt.Println("Status:", result.Status)
}
