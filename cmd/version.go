package main

import (
	"fmt"
	"runtime"
)

// Version is set at build time via -ldflags "-X main.Version=...".
var Version = "dev"

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("quietsearch %s (%s %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
