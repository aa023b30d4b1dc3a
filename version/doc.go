// Package version carries build version information for gofetch binaries
// and the default User-Agent sent by the HTTP adapter.
//
// Version, commit and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/gofetch/version.Version=1.2.0" ./cmd/fetchctl
package version
