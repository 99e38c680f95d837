// Package main provides the entry point for the LinkStash API server.
package main

import (
	"fmt"
	"os"

	"github.com/listenupapp/linkstash/internal/di"
)

func main() {
	if err := di.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run server: %v\n", err)
		os.Exit(1)
	}
}
