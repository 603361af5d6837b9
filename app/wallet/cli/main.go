// This program provides a wallet for accounts holding tokens on the ledger.
package main

import "github.com/Ollenmire/usdn-audit-critical/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
