// Package main provides the roster CLI.
package main

import "github.com/mesh-intelligence/roster/internal/cli"

func main() {
	cli.Execute()
}
