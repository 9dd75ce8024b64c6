package main

import "github.com/notargets/meshjoin/cmd"

func main() {
	cmd.Execute()
}
