// internal/version/version.go
package version

// Version is stamped at build time via -ldflags "-X methdiff/internal/version.Version=...".
var Version = "dev"
