package main

import "github.com/stockfolio/stockfolio/internal/cli"

func main() {
	cli.Execute()
}
