// ABOUTME: Entry point for the ufo CLI
// ABOUTME: Runs the root command and exits non-zero on error

package main

import (
	"os"
)

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
