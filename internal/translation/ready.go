package translation

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Launcher makes sure a translation service answers on host:port. How the
// service gets started (docker, a local process, a remote cluster) is up to
// the implementation.
type Launcher interface {
	EnsureRunning(ctx context.Context, host string, port int) error
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(ctx context.Context, host string, port int) error

func (f LauncherFunc) EnsureRunning(ctx context.Context, host string, port int) error {
	return f(ctx, host, port)
}

// Probe is a Launcher that starts nothing and waits until the endpoint
// accepts HTTP requests.
type Probe struct {
	Interval time.Duration

	http   *resty.Client
	logger zerolog.Logger
}

// NewProbe creates a probe polling every interval.
func NewProbe(interval time.Duration, logger zerolog.Logger) *Probe {
	if interval <= 0 {
		interval = time.Second
	}
	return &Probe{
		Interval: interval,
		http:     resty.New().SetTimeout(interval),
		logger:   logger,
	}
}

// EnsureRunning returns once any HTTP response comes back from host:port,
// or with an error when ctx is done first.
func (p *Probe) EnsureRunning(ctx context.Context, host string, port int) error {
	url := "http://" + net.JoinHostPort(host, strconv.Itoa(port)) + "/"

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		_, err := p.http.R().SetContext(ctx).Get(url)
		if err == nil {
			p.logger.Debug().Str("url", url).Int("attempt", attempt).Msg("translation service ready")
			return nil
		}
		p.logger.Debug().Err(err).Str("url", url).Int("attempt", attempt).Msg("translation service not ready")

		select {
		case <-ctx.Done():
			return fmt.Errorf("translation service at %s not ready: %w", url, &NetworkError{URL: url, Err: err})
		case <-ticker.C:
		}
	}
}
