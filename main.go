package main

import "github.com/dotcommander/tmmi/cmd"

func main() {
	cmd.Execute()
}
