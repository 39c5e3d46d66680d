package main

import "github.com/punch-project/punch/internal/cli"

func main() {
	cli.Execute()
}
