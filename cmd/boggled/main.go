// Command boggled solves 4x4 word grids, either one at a time from the
// command line or as a small TCP server.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
