package main

import "cvrank/internal/cli"

func main() {
	cli.Execute()
}
