package main

import "github.com/aerostudio/aerocalc/cmd"

func main() {
	cmd.Execute()
}
