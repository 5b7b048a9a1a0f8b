// Command mkver writes a module exposing the project's version and git provenance.
package main

import "github.com/oshokin/mkver/cmd/mkver/cmd"

func main() {
	cmd.Execute()
}
