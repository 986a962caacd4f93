// internal/version/version.go
package version

// Version is stamped at release time; "dev" for local builds.
var Version = "0.1.0"
