// This program performs administrative tasks for the ledger service.
package main

import (
	"fmt"
	"os"

	"github.com/Ollenmire/usdn-audit-critical/app/tooling/admin/commands"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// run handles the execution of the commands specified on the command line.
func run(args []string) error {
	if len(args) < 2 {
		return commands.Help()
	}

	switch args[1] {
	case "bals":
		if err := commands.Balances(args); err != nil {
			return fmt.Errorf("getting balances: %w", err)
		}
	case "supply":
		if err := commands.Supply(args); err != nil {
			return fmt.Errorf("getting supply: %w", err)
		}
	case "mint":
		if err := commands.Mint(args); err != nil {
			return fmt.Errorf("minting: %w", err)
		}
	case "rebase":
		if err := commands.Rebase(args); err != nil {
			return fmt.Errorf("rebasing: %w", err)
		}
	case "observer":
		if err := commands.Observer(args); err != nil {
			return fmt.Errorf("setting observer: %w", err)
		}
	default:
		return commands.Help()
	}

	return nil
}
