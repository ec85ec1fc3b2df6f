// Command searchcache operates on a search-result cache directory from
// the command line. It is a thin caller of the public cache API: every
// subcommand opens the cache, performs one operation and exits.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
