// Command quickpick runs the keyword finder against the affiliate catalog
// from the terminal.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
