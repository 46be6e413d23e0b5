package version

// Version is overridden at build time with -ldflags "-X github.com/bnema/fanthom/internal/version.Version=...".
var Version = "dev"
