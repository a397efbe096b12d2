package main

import "github.com/strrl/elevate/cmd/elevate/commands"

func main() {
	commands.Execute()
}
