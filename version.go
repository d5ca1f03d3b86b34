package vfattokenlists

import (
	"fmt"
	"io"
)

// Populated at build time via -ldflags.
var (
	Version = "v0.1.0"
	GitRev  = "undefined"
	Date    = ""
)

// PrintVersion prints version info into the provided io.Writer.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "Version = %s\n", Version)
	fmt.Fprintf(w, "Git revision = %s\n", GitRev)
	fmt.Fprintf(w, "Build date = %s\n", Date)
}
