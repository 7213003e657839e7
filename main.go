package main

import (
	"fmt"
	"os"

	"github.com/Startup-Mindset/marketplace-boardNotifier/cmd"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/exitcode"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(exitcode.ExitCode(err))
	}
}
