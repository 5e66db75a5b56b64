// Package main provides the entry point for the stemset CLI tool.
package main

import (
	"github.com/blackmindsinstem/stemset/cmd/stemset/cmd"
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
