package gnblob

var (
	// Version of gnblob.
	Version = "v0.1.0"
	// Build timestamp, set by ldflags during the build.
	Build = "n/a"
)
