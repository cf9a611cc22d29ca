package main

import "github.com/aussiebroadwan/taxi/internal/taxi/cli"

func main() {
	cli.Execute()
}
