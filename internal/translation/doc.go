// Package translation is a client for an EasyNMT translation service. It
// sends one HTTP request per unique text, serializes requests through a
// single ordered queue, caches results for the lifetime of the client and
// reshapes text around the remote engine's known output quirks.
package translation
