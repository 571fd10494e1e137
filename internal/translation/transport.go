package translation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// Sender issues a single translation request to the remote service.
type Sender interface {
	Send(ctx context.Context, req Request) (*Result, error)
}

// Transport talks to the EasyNMT /translate endpoint. It never retries.
type Transport struct {
	url     string
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	logger  zerolog.Logger
}

// NewTransport creates a transport for cfg.Host and cfg.Port.
func NewTransport(cfg Config) *Transport {
	cfg = cfg.withDefaults()

	client := resty.New()
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	t := &Transport{
		url:    translateURL(cfg.Host, cfg.Port),
		http:   client,
		logger: *cfg.Logger,
	}

	if cfg.BreakerFailures > 0 {
		failures := cfg.BreakerFailures
		t.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "easynmt",
			MaxRequests: 1,
			Timeout:     cfg.BreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			IsSuccessful: func(err error) bool {
				return err == nil || !IsNetworkError(err)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				t.logger.Warn().
					Str("breaker", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("translation circuit breaker changed state")
			},
		})
	}

	return t
}

// URL returns the /translate endpoint this transport calls.
func (t *Transport) URL() string {
	return t.url
}

// Send performs GET /translate for req. Connection failures are returned as
// *NetworkError, malformed responses as *ProtocolError.
func (t *Transport) Send(ctx context.Context, req Request) (*Result, error) {
	if t.breaker == nil {
		return t.send(ctx, req)
	}

	out, err := t.breaker.Execute(func() (interface{}, error) {
		return t.send(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &NetworkError{URL: t.url, Err: err}
	}
	if err != nil {
		return nil, err
	}
	return out.(*Result), nil
}

func (t *Transport) send(ctx context.Context, req Request) (*Result, error) {
	params := map[string]string{
		"target_lang": req.TargetLang,
		"text":        req.Text,
	}
	if req.SourceLang != "" {
		params["source_lang"] = req.SourceLang
	}

	resp, err := t.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(t.url)
	if err != nil {
		return nil, &NetworkError{URL: t.url, Err: err}
	}

	body := resp.Body()
	if ev := t.logEvent(req.Options.Debug); ev.Enabled() {
		ev.Str("text", req.Text).
			Str("source_lang", req.SourceLang).
			Str("target_lang", req.TargetLang).
			Int("status", resp.StatusCode()).
			RawJSON("result", jsonOrQuoted(body)).
			Msg("translate")
	}

	if resp.IsError() {
		return nil, &ProtocolError{
			Field:  "status",
			Reason: fmt.Sprintf("unexpected status %s: %s", resp.Status(), strings.TrimSpace(string(body))),
		}
	}

	return decodeResult(body)
}

func (t *Transport) logEvent(debug bool) *zerolog.Event {
	if debug {
		return t.logger.Info()
	}
	return t.logger.Debug()
}

func translateURL(host string, port int) string {
	return "http://" + net.JoinHostPort(host, strconv.Itoa(port)) + "/translate"
}

// jsonOrQuoted keeps log lines valid JSON when the remote returns garbage.
func jsonOrQuoted(body []byte) []byte {
	if _, err := decodeStrictJSON(body); err == nil {
		return body
	}
	return []byte(strconv.Quote(string(body)))
}
