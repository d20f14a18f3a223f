// Package main provides the entry point for the gitpulse CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/Sumatoshi-tech/gitpulse/cmd/gitpulse/commands"
)

func main() {
	err := commands.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
