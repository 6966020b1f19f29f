package main

import (
	"pointpair/internal/cli"
)

func main() {
	cli.Execute()
}
