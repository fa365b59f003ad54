package main

import (
	"fmt"
	"os"

	"github.com/quiltlang/quiltvm/cmd/quilt/cmd"
)

func main() {
	root := cmd.NewRoot()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
