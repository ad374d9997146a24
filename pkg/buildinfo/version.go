// Package buildinfo holds version information injected at build time:
//
//	go build -ldflags "-X github.com/ladybug-tools/dragonfly-display/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/ladybug-tools/dragonfly-display/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/ladybug-tools/dragonfly-display/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent identifies the tool in HTTP responses and object metadata.
func UserAgent() string {
	return "dragonfly-display/" + Version
}
