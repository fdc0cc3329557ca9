package main

import "github.com/deploymenttheory/go-pckbrute/cmd"

func main() {
	cmd.Execute()
}
