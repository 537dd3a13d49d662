/*
Package main provides the CLI entry point for the mailtrap tool.
*/
package main

import (
	"os"

	"github.com/mailtrap/mailtrap-go/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
