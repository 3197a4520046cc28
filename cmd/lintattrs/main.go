// Package main provides the lintattrs CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/lintattrs/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
