// trimcut builds cut lists for window and door trim.
//
// Build:
//
//	go build -o trimcut ./cmd/trimcut
//
// Version information is injected with ldflags:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.commit=$(git rev-parse --short HEAD)" ./cmd/trimcut
package main

import (
	"github.com/piwi3910/trimcut/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewRootCommand())
}
