// Package buildinfo holds the version stamped into tipmark binaries.
//
// Set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/tipmark/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/tipmark/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)" ./cmd/tipmark
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp in RFC 3339.
	Date = "unknown"
)

// Info is the build information reported by the health endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the current build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String returns the build information on one line.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\n", String())
}
