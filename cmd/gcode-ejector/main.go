// Package main is the entry point for the gcode-ejector CLI.
//
// The binary post-processes sliced G-code so the printer pushes the finished
// part off the bed. All functionality lives in the internal/cli package.
//
// Build-time variables (version, commit, date) are injected via ldflags and
// default to "dev", "none", and "unknown" during development.
package main

import (
	"github.com/shinji-kodama/gcode-ejector/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewRootCommand())
}
