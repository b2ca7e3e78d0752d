package main

import (
	"os"

	"github.com/tropicaldog17/orgledger/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
