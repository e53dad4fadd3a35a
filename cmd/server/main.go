// Package main implements the entry point for the Generator Ops API server,
// which lets authenticated users manage maintenance tasks for their
// buildings and generators.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
