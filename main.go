package main

import "github.com/uilabs/architect/cmd"

func main() {
	cmd.Execute()
}
