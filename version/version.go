// Package version holds build metadata injected at link time.
package version

import "runtime"

// Set via ldflags at build time:
//
//	go build -ldflags "-X github.com/docsift/docsift/version.GitRelease=$(git describe --tags)"
var (
	GitRelease    = "dev"
	GitCommit     = "unknown"
	GitCommitDate = "unknown"
)

// GoInfo is the Go toolchain the binary was built with.
var GoInfo = runtime.Version()
