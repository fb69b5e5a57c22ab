package main

import "github.com/notargets/gojabber/cmd"

func main() {
	cmd.Execute()
}
