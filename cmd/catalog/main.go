// Package main is the entry point of the catalog CLI.
package main

import "github.com/sam-pro/catalog/cmd/catalog/cmd"

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	cmd.Execute(version, buildDate)
}
