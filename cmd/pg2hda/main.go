// Command pg2hda builds the higher-dimensional automaton of a system of
// program graphs and prints it.
package main

import (
	"os"
)

// version is set at link time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
