package main

import "github.com/panyam/trendchart/cmd/trend/commands"

func main() {
	commands.Execute()
}
