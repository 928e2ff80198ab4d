// Package buildinfo carries version metadata stamped in at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/zatyshok/internal/buildinfo.Version=1.3.0"
//
// Version doubles as the client version tag sent to the backend on every
// request, so a build without -ldflags reports the development default.
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version   = "0.0.0-dev"
	BuildDate = "N/A"
	Commit    = "N/A"
)

// PrintBuildData writes the build banner to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
