// Package main provides the cookiejar CLI.
package main

import "github.com/mesh-intelligence/cookiejar/internal/cli"

func main() {
	cli.Execute()
}
