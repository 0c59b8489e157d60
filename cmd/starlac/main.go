// Package main implements the starlac entry point.
package main

import (
	"os"

	"github.com/you-not-fish/starla/cmd/starlac/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
