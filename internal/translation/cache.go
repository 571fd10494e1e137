package translation

import (
	"context"
	"fmt"
	"sync"
)

// autoDetectKey stands in for an absent source language. It cannot collide
// with a real language code.
const autoDetectKey = "?"

type cacheKey struct {
	source string
	target string
	text   string
}

func newCacheKey(source, target, text string) cacheKey {
	if source == "" {
		source = autoDetectKey
	}
	return cacheKey{source: source, target: target, text: text}
}

// cacheEntry is a translation that is either stored or still being fetched.
type cacheEntry struct {
	done  chan struct{}
	value string
	err   error
}

func (e *cacheEntry) resolved() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

// TranslationCache stores translations keyed by (source, target, text) for
// the lifetime of a Client. Entries are never evicted; Clear drops them all.
// Concurrent lookups of a key that is being fetched wait for that fetch
// instead of starting their own.
type TranslationCache struct {
	mu      sync.Mutex
	entries map[cacheKey]*cacheEntry
}

// NewTranslationCache creates an empty translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		entries: make(map[cacheKey]*cacheEntry),
	}
}

// Get returns a stored translation. In-flight fetches are not reported.
func (tc *TranslationCache) Get(source, target, text string) (string, bool) {
	tc.mu.Lock()
	e, ok := tc.entries[newCacheKey(source, target, text)]
	tc.mu.Unlock()

	if !ok || !e.resolved() || e.err != nil {
		return "", false
	}
	return e.value, true
}

// GetOrCompute returns the stored translation for the key, or runs compute
// and stores its result. Failed computations are not stored.
//
// compute runs on its own goroutine with a context that is never cancelled,
// so the entry always settles with the real outcome. Every caller, including
// the one that started the fill, only waits for it under its own ctx.
func (tc *TranslationCache) GetOrCompute(ctx context.Context, source, target, text string, compute func(context.Context) (string, error)) (string, error) {
	key := newCacheKey(source, target, text)

	tc.mu.Lock()
	e, ok := tc.entries[key]
	if !ok {
		e = &cacheEntry{done: make(chan struct{})}
		tc.entries[key] = e
		go tc.fill(context.WithoutCancel(ctx), key, e, compute)
	}
	tc.mu.Unlock()

	select {
	case <-e.done:
		return e.value, e.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (tc *TranslationCache) fill(ctx context.Context, key cacheKey, e *cacheEntry, compute func(context.Context) (string, error)) {
	defer func() {
		if r := recover(); r != nil {
			e.value, e.err = "", fmt.Errorf("translation cache: compute panicked: %v", r)
		}
		tc.settle(key, e)
	}()

	e.value, e.err = compute(ctx)
}

func (tc *TranslationCache) settle(key cacheKey, e *cacheEntry) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	// After a Clear the key may belong to a newer entry.
	if e.err != nil && tc.entries[key] == e {
		delete(tc.entries, key)
	}
	close(e.done)
}

// Clear drops every stored translation. Fetches already in flight still
// answer their callers but are not stored.
func (tc *TranslationCache) Clear() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.entries = make(map[cacheKey]*cacheEntry)
}

// Len returns the number of stored translations.
func (tc *TranslationCache) Len() int {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	n := 0
	for _, e := range tc.entries {
		if e.resolved() && e.err == nil {
			n++
		}
	}
	return n
}
