package main

import "github.com/pelagic-ai/coracle/cmd/coracle/cli"

func main() {
	cli.Execute()
}
