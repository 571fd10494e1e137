package translation

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Client owns one cache and one queue in front of a Sender. Build one per
// process (or per test) and share it between callers.
type Client struct {
	sender Sender
	cache  *TranslationCache
	queue  *Queue
	logger zerolog.Logger

	closeOnce sync.Once
}

// NewClient creates a client that talks HTTP to cfg.Host:cfg.Port.
func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()
	return NewClientWithSender(NewTransport(cfg), *cfg.Logger)
}

// NewClientWithSender creates a client around an arbitrary sender.
func NewClientWithSender(sender Sender, logger zerolog.Logger) *Client {
	return &Client{
		sender: sender,
		cache:  NewTranslationCache(),
		queue:  NewQueue(),
		logger: logger,
	}
}

// Translate runs req through the shaping pipeline and returns the first
// translated string. Blank text is returned as is without any remote call.
func (c *Client) Translate(ctx context.Context, req Request) (string, error) {
	if isBlank(req.Text) {
		return req.Text, nil
	}

	call := translateFunc(c.remote)
	if !req.Options.NoWrap {
		call = wrapStage(call)
	}
	if !req.Options.NoTrim {
		call = trimStage(call)
	}
	if !req.Options.NoCache {
		call = c.cacheStage(call)
	}

	out, err := call(ctx, req)
	if err != nil {
		return "", fmt.Errorf("translate to %s: %w", req.TargetLang, err)
	}
	return out, nil
}

// Preload sends a placeholder text through the full pipeline so the remote
// service loads the model for this language pair.
func (c *Client) Preload(ctx context.Context, sourceLang, targetLang string) error {
	c.logger.Debug().
		Str("source_lang", sourceLang).
		Str("target_lang", targetLang).
		Msg("preload model")

	_, err := c.Translate(ctx, Request{
		Text:       PreloadText,
		SourceLang: sourceLang,
		TargetLang: targetLang,
	})
	if err != nil {
		return fmt.Errorf("preload %s->%s model: %w", sourceLang, targetLang, err)
	}
	return nil
}

// ClearCache drops all cached translations. Requests in flight are unaffected.
func (c *Client) ClearCache() {
	c.cache.Clear()
}

// CacheLen returns the number of cached translations.
func (c *Client) CacheLen() int {
	return c.cache.Len()
}

// Pending returns the number of requests waiting in the queue.
func (c *Client) Pending() int {
	return c.queue.Len()
}

// Close waits for queued requests to finish and stops the queue worker.
func (c *Client) Close() {
	c.closeOnce.Do(c.queue.Close)
}

func (c *Client) cacheStage(next translateFunc) translateFunc {
	return func(ctx context.Context, req Request) (string, error) {
		return c.cache.GetOrCompute(ctx, req.SourceLang, req.TargetLang, req.Text, func(fillCtx context.Context) (string, error) {
			c.logger.Debug().
				Str("text", req.Text).
				Str("target_lang", req.TargetLang).
				Msg("translation cache miss")
			return next(fillCtx, req)
		})
	}
}

// remote sends req through the queue, or straight to the sender when the
// queue is bypassed. Queued sends run to completion even if ctx is cancelled.
func (c *Client) remote(ctx context.Context, req Request) (string, error) {
	if req.Options.NoQueue {
		res, err := c.sender.Send(ctx, req)
		if err != nil {
			return "", err
		}
		return res.Text(), nil
	}

	sendCtx := context.WithoutCancel(ctx)
	future := c.queue.Enqueue(func() (*Result, error) {
		return c.sender.Send(sendCtx, req)
	})

	res, err := future.Wait(ctx)
	if err != nil {
		return "", err
	}
	return res.Text(), nil
}
