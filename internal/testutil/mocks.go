package testutil

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"
)

// FakeCall is one request received by FakeEasyNMT.
type FakeCall struct {
	Text       string
	SourceLang string
	HasSource  bool
	TargetLang string
}

// FakeEasyNMT is an in-process stand-in for the EasyNMT /translate endpoint.
// Texts are matched exactly as they arrive on the wire.
type FakeEasyNMT struct {
	Server *httptest.Server

	mu           sync.Mutex
	translations map[string]string
	bodies       map[string]string
	statuses     map[string]int
	delays       map[string]time.Duration
	calls        []FakeCall
	inFlight     int
	maxInFlight  int
}

// NewFakeEasyNMT starts a fake server that is closed when the test ends.
func NewFakeEasyNMT(t *testing.T) *FakeEasyNMT {
	t.Helper()

	f := &FakeEasyNMT{
		translations: make(map[string]string),
		bodies:       make(map[string]string),
		statuses:     make(map[string]int),
		delays:       make(map[string]time.Duration),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Server.Close)
	return f
}

// Host returns the host the fake listens on.
func (f *FakeEasyNMT) Host() string {
	host, _, _ := net.SplitHostPort(f.Server.Listener.Addr().String())
	return host
}

// Port returns the port the fake listens on.
func (f *FakeEasyNMT) Port() int {
	_, port, _ := net.SplitHostPort(f.Server.Listener.Addr().String())
	n, _ := strconv.Atoi(port)
	return n
}

// SetTranslation answers text with a well-formed response translating to out.
func (f *FakeEasyNMT) SetTranslation(text, out string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.translations[text] = out
}

// SetBody answers text with a raw body and status code.
func (f *FakeEasyNMT) SetBody(text string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[text] = body
	f.statuses[text] = status
}

// SetDelay holds the response for text for d.
func (f *FakeEasyNMT) SetDelay(text string, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delays[text] = d
}

// MaxConcurrent returns the highest number of requests handled at once.
func (f *FakeEasyNMT) MaxConcurrent() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxInFlight
}

// Calls returns the received requests in arrival order.
func (f *FakeEasyNMT) Calls() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FakeCall(nil), f.calls...)
}

// CallCount returns how many requests were received.
func (f *FakeEasyNMT) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *FakeEasyNMT) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/translate" {
		http.NotFound(w, r)
		return
	}

	query := r.URL.Query()
	call := FakeCall{
		Text:       query.Get("text"),
		SourceLang: query.Get("source_lang"),
		HasSource:  query.Has("source_lang"),
		TargetLang: query.Get("target_lang"),
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	delay := f.delays[call.Text]
	body, hasBody := f.bodies[call.Text]
	status := f.statuses[call.Text]
	out, hasTranslation := f.translations[call.Text]
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	// Released before the response is written so the next queued request
	// cannot overlap with this one.
	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if hasBody {
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
		return
	}

	if !hasTranslation {
		out = "mock translation of " + call.Text
	}

	var sourceLang any
	detected := []string{}
	if call.HasSource {
		sourceLang = call.SourceLang
	} else {
		detected = append(detected, "en")
	}

	json.NewEncoder(w).Encode(map[string]any{
		"target_lang":      call.TargetLang,
		"source_lang":      sourceLang,
		"detected_langs":   detected,
		"translated":       []string{out},
		"translation_time": 0.0421,
	})
}
