package main

import (
	"fmt"
	"os"

	"github.com/lixenwraith/graphview/core"
)

func main() {
	// Restore the terminal before the stack trace if anything below panics
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "graphview: %v\n", err)
		os.Exit(1)
	}
}
