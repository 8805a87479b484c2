package main

import "go-catalog-ws/cmd/catalogctl/commands"

func main() {
	commands.Execute()
}
