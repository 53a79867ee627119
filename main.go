package main

import (
	"fmt"
	"os"

	"github.com/sqlcheck/sqlcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
