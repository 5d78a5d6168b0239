package main

import "github.com/abaddouh/igazolo/internal/cli"

func main() {
	cli.Execute()
}
