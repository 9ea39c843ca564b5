// Command animtiming inspects animation effect timing.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/timing/cmd/animtiming/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
