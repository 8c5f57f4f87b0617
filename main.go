package main

import "github.com/gmxagent/gmxagent/cmd"

func main() {
	cmd.Execute()
}
