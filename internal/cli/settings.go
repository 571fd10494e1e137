package cli

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"codeberg.org/snonux/easynmt/internal/translation"
)

// Settings are the effective values after merging flags, environment and
// the config file.
type Settings struct {
	Host            string
	Port            int
	Timeout         time.Duration
	BreakerFailures uint32
	Source          string
	Target          string
	LogLevel        string
	Debug           bool
}

// LoadSettings reads the effective settings from viper.
func LoadSettings() Settings {
	s := Settings{
		Host:            viper.GetString("remote.host"),
		Port:            viper.GetInt("remote.port"),
		Timeout:         viper.GetDuration("remote.timeout"),
		BreakerFailures: viper.GetUint32("breaker.failures"),
		Source:          viper.GetString("translate.source"),
		Target:          viper.GetString("translate.target"),
		LogLevel:        viper.GetString("log.level"),
		Debug:           viper.GetBool("debug"),
	}

	if s.Host == "" {
		s.Host = translation.DefaultHost
	}
	if s.Port == 0 {
		s.Port = translation.DefaultPort
	}
	if s.Debug && !viper.IsSet("log.level") {
		s.LogLevel = zerolog.LevelDebugValue
	}

	return s
}

// ClientConfig converts the settings into a translation client config.
func (s Settings) ClientConfig(logger zerolog.Logger) translation.Config {
	cfg := translation.DefaultConfig()
	cfg.Host = s.Host
	cfg.Port = s.Port
	cfg.Timeout = s.Timeout
	cfg.BreakerFailures = s.BreakerFailures
	cfg.Logger = &logger
	return cfg
}
