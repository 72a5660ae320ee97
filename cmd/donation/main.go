package main

import "github.com/bitkind/donation-contract/internal/cli"

func main() {
	cli.Execute()
}
