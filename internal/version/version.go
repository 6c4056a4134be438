package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/dotsetup/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/dotsetup/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/dotsetup/internal/version.Date={{.Date}}
)

// Info is the one-line version summary
func Info() string {
	return Version + " (" + Commit + ", " + Date + ")"
}
