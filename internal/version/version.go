package version

// Version is overridden at build time with -ldflags "-X guidesafe/internal/version.Version=...".
var Version = "dev"
