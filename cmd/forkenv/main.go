package main

import "forkenv/internal/cli"

func main() {
	cli.Execute()
}
