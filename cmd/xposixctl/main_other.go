//go:build !unix

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "xposixctl: unsupported platform")
	os.Exit(1)
}
