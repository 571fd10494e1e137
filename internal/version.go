package internal

// Version is the easynmt release, overridden with -ldflags at build time.
var Version = "0.3.0"
