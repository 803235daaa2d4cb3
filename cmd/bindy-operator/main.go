// Command bindy-operator runs the Bindy controller manager.
package main

import (
	"fmt"
	"os"

	"github.com/firestoned/bindy/cmd/bindy-operator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
