// Package main provides the repticare CLI, a diary for reptile keepers.
package main

import (
	"fmt"
	"os"
	"time"
)

func main() {
	a := &app{now: time.Now}
	root := newRootCmd(a)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "repticare:", err)
		os.Exit(exitCode(err))
	}
}
