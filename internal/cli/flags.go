package cli

import (
	"time"

	"codeberg.org/snonux/easynmt/internal/translation"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile   string
	EnvFile   string
	BatchFile string
	Wait      time.Duration

	// Remote service flags
	Host            string
	Port            int
	Timeout         time.Duration
	BreakerFailures uint32

	// Translation flags
	Source  string
	Target  string
	NoCache bool
	NoQueue bool
	NoTrim  bool
	NoWrap  bool

	// Logging flags
	Debug    bool
	LogLevel string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Host:     translation.DefaultHost,
		Port:     translation.DefaultPort,
		Target:   "en",
		LogLevel: "warn",
	}
}

// Options returns the per-call pipeline switches selected on the command line.
func (f *Flags) Options() translation.Options {
	return translation.Options{
		NoCache: f.NoCache,
		NoQueue: f.NoQueue,
		NoTrim:  f.NoTrim,
		NoWrap:  f.NoWrap,
	}
}
