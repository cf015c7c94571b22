package source

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultRetryMax  = 2
	defaultUserAgent = "sdkview"
	defaultBackoff   = 250 * time.Millisecond
	maxBackoff       = 2 * time.Second
)

// retryTransport retries replayable requests (GET/HEAD without a body) on
// transport errors, doubling the wait between attempts, and sets a
// User-Agent when the caller did not.
type retryTransport struct {
	base      http.RoundTripper
	retryMax  int
	backoff   time.Duration
	userAgent string
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	canRetry := (req.Method == http.MethodGet || req.Method == http.MethodHead) && req.Body == nil
	max := t.retryMax
	if max < 0 || !canRetry {
		max = 0
	}

	backoff := t.backoff
	var lastErr error
	for attempt := 0; attempt <= max; attempt++ {
		r := req.Clone(req.Context())
		if r.Header.Get("User-Agent") == "" {
			r.Header.Set("User-Agent", t.userAgent)
		}
		resp, err := t.base.RoundTrip(r)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if req.Context().Err() != nil || attempt == max {
			return nil, lastErr
		}

		select {
		case <-req.Context().Done():
			return nil, lastErr
		case <-time.After(backoff):
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}
	}
	return nil, lastErr
}

// newHTTPClient builds the client used for API calls and downloads. A
// non-empty proxyURL routes every request through that proxy.
func newHTTPClient(proxyURL string, retryMax int) (*http.Client, error) {
	base := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
		MaxIdleConnsPerHost:   8,
	}
	if proxyURL = strings.TrimSpace(proxyURL); proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, err
		}
		base.Proxy = http.ProxyURL(u)
	}
	return &http.Client{
		Transport: &retryTransport{base: base, retryMax: retryMax, backoff: defaultBackoff, userAgent: defaultUserAgent},
		Timeout:   defaultTimeout,
	}, nil
}
