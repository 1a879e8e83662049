package common

// Version information, set at build time via ldflags:
//
//	go build -ldflags "-X github.com/finlens/incomelens/internal/common.Version=..."
var (
	Version   = "dev"
	Build     = "local"
	GitCommit = "unknown"
)

// GetVersion returns the application version
func GetVersion() string { return Version }

// GetBuild returns the build identifier
func GetBuild() string { return Build }

// GetGitCommit returns the git commit hash
func GetGitCommit() string { return GitCommit }
