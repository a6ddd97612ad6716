// Command memagent is a terminal client for the memory agent backend.
// It exercises the SDK packages: session login, room and message
// CRUD, realtime chat, memory search, document upload and the agent
// marketplace.
package main

import (
	"fmt"
	"os"
)

func main() {
	root, err := newRootCmd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
