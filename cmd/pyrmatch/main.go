// Command pyrmatch is the CLI front end for the pyrmatch library: it
// runs one-shot matches against files, watches the live screen, and
// inspects the resolved configuration.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
