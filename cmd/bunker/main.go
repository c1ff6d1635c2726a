package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bunker: %v\n", err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

// exitCode is set by the run commands to the failure count of the group
// they executed; zero signifies a clean run.
var exitCode int
