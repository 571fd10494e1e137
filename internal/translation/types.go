package translation

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultHost is where the EasyNMT container is expected to listen.
	DefaultHost = "localhost"
	// DefaultPort matches the port published by the easynmt docker image.
	DefaultPort = 24080

	// PreloadText is sent by Preload to force a model into memory.
	PreloadText = "preload model"
)

// Options holds per-call flags. The zero value runs every stage.
type Options struct {
	NoCache bool // bypass both cache read and cache write
	NoQueue bool // call the transport directly instead of through the queue
	NoTrim  bool
	NoWrap  bool
	Debug   bool // log the request/response pair at info level
}

// Request is one text to translate. An empty SourceLang lets the remote
// service detect the language.
type Request struct {
	Text       string
	SourceLang string
	TargetLang string
	Options    Options
}

// Result is the decoded /translate response body.
type Result struct {
	TargetLang      string   `json:"target_lang"`
	SourceLang      *string  `json:"source_lang"`
	DetectedLangs   []string `json:"detected_langs,omitempty"`
	Translated      []string `json:"translated"`
	TranslationTime float64  `json:"translation_time"`
}

// Text returns the canonical translation.
func (r *Result) Text() string {
	if r == nil || len(r.Translated) == 0 {
		return ""
	}
	return r.Translated[0]
}

// Config configures a Client and its Transport.
type Config struct {
	Host string
	Port int

	// Timeout bounds a single HTTP request. Zero leaves it to the environment.
	Timeout time.Duration

	// BreakerFailures opens a circuit breaker after that many consecutive
	// network failures. Zero disables the breaker.
	BreakerFailures uint32
	// BreakerTimeout is how long an open breaker rejects calls.
	BreakerTimeout time.Duration

	// Logger receives request logs. Nil means zerolog.Nop().
	Logger *zerolog.Logger
}

// DefaultConfig returns the configuration for a local EasyNMT container.
func DefaultConfig() Config {
	return Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		BreakerTimeout: 30 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.BreakerTimeout <= 0 {
		c.BreakerTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		nop := zerolog.Nop()
		c.Logger = &nop
	}
	return c
}
