// Package main provides the entry point for the songstore CLI tool.
package main

import (
	"github.com/egodevrjm/songstore/cmd/songstore/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
