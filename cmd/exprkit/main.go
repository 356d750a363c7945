// Package main provides the exprkit command-line tool.
package main

import (
	"os"

	"github.com/randalmurphal/exprkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
