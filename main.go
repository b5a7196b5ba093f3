// Package main is the entry point for the Field Kit CLI application.
// It logs into farmOS servers and caches session and profile data.
package main

import (
	"fieldkit/cli/cmd"
)

func main() {
	cmd.Execute()
}
