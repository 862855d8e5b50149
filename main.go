package main

import "github.com/lepinkainen/movieway/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
