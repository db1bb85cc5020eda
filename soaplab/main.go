// Package main is the entry point of the soaplab command.
package main

import "github.com/KomalYerkal/Preparation-of-Soap/soaplab/cmd"

func main() {
	cmd.Execute()
}
