package main

import "clipmerge/internal/cli"

func main() {
	cli.Execute()
}
