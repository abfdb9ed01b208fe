package main

import (
	"fmt"
	"os"

	"rollcall/cmd/rollcall"
)

func main() {
	if err := rollcall.Command.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
