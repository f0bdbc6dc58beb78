// Package network provides the HTTP client shared by the application's few remote lookups.
package network

import (
	"net/http"
	"time"

	"github.com/reelctl/reelctl/constant"
)

// Client is used for update checks. Playback of remote media goes through the engine.
var Client = &http.Client{
	Timeout:   10 * time.Second,
	Transport: &userAgent{next: newTransport()},
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 4
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 5 * time.Second
	return t
}

type userAgent struct {
	next http.RoundTripper
}

func (u *userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", constant.App+"/"+constant.Version)
	}
	return u.next.RoundTrip(req)
}
