// Package network provides a pre-configured, optimized HTTP client for catalog API communication.
package network

import (
	"net/http"
	"time"
)

// Client is the singleton HTTP client shared across the application.
// Every request to the catalog index travels through the CORS relay proxy,
// so the pool limits are tuned for many short-lived requests to one host.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// newTransport initializes a tuned http.Transport with optimized pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}
