// Command credmarketctl runs operator tasks against the CredMarket database:
// migrations, company review and staff accounts. It reads the same
// environment as the server.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
