package api

// Version information - these will be set at build time via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// GetVersionInfo returns the current version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		OK:        true,
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}
}
