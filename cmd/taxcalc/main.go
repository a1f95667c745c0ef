package main

import (
	"os"

	"github.com/govalues/moneytax/cmd/taxcalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
