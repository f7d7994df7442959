package common

// Overridable at build time via -ldflags.
var (
	Version   = "0.3.0"
	GitCommit = "dev"
)
