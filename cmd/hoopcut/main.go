package main

import "github.com/forPelevin/hoopcut/internal/cli"

func main() {
	cli.Main()
}
