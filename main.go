// The main package for the demosites executable.
package main

import (
	"github.com/cjrolfe/demosites/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
