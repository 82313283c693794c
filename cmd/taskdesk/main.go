// Package main is the entry point for the taskdesk server and admin commands.
package main

import (
	"fmt"
	"os"

	"taskdesk/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
