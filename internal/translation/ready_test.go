package translation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/easynmt/internal/testutil"
)

func TestProbe_Ready(t *testing.T) {
	fake := testutil.NewFakeEasyNMT(t)
	probe := NewProbe(10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// The fake answers 404 on "/", which still counts as a live service.
	if err := probe.EnsureRunning(ctx, fake.Host(), fake.Port()); err != nil {
		t.Fatalf("expected running service, got %v", err)
	}
	if fake.CallCount() != 0 {
		t.Errorf("probe must not call /translate, got %d calls", fake.CallCount())
	}
}

func TestProbe_NotReady(t *testing.T) {
	cfg := closedConfig(t)
	probe := NewProbe(10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := probe.EnsureRunning(ctx, cfg.Host, cfg.Port)
	if err == nil {
		t.Fatal("expected an error for a closed port")
	}
	if !IsNetworkError(err) {
		t.Errorf("expected network error, got %T: %v", err, err)
	}
}

func TestNewProbe_DefaultInterval(t *testing.T) {
	if p := NewProbe(0, zerolog.Nop()); p.Interval != time.Second {
		t.Errorf("expected 1s default interval, got %v", p.Interval)
	}
}

func TestLauncherFunc(t *testing.T) {
	boom := errors.New("docker not installed")
	var gotHost string
	var gotPort int

	var l Launcher = LauncherFunc(func(_ context.Context, host string, port int) error {
		gotHost, gotPort = host, port
		return boom
	})

	if err := l.EnsureRunning(context.Background(), DefaultHost, DefaultPort); !errors.Is(err, boom) {
		t.Errorf("expected launcher error, got %v", err)
	}
	if gotHost != DefaultHost || gotPort != DefaultPort {
		t.Errorf("launcher got %s:%d", gotHost, gotPort)
	}
}
