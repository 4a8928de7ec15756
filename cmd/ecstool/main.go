// Command ecstool generates component sets and inspects saved entity store snapshots.
package main

import "os"

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
