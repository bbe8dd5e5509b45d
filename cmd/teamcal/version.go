package main

import "fmt"

var (
	release   = "UNKNOWN"
	buildDate = "UNKNOWN"
	gitHash   = "UNKNOWN"
)

func printVersion() {
	fmt.Printf("release: %s, build date: %s, git hash: %s\n", release, buildDate, gitHash)
}
