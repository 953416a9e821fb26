package main

import "tra-glossary/internal/cli"

func main() {
	cli.Execute()
}
