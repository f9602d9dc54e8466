package main

import "github.com/phazegen/hgtscan/internal/cli"

func main() {
	cli.Execute() // initialize cobra commands
}
