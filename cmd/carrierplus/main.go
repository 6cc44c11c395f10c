package main

import "github.com/andrescamacho/carrierplus-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
