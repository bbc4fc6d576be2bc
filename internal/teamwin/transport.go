package teamwin

import (
	"net/http"
	"strings"
	"time"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// headerTransport stamps fixed headers on every outbound request.
type headerTransport struct {
	headers http.Header
	wrapped http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so the caller's request is left untouched
	req2 := req.Clone(req.Context())
	for key, values := range t.headers {
		req2.Header.Del(key)
		for _, v := range values {
			req2.Header.Add(key, v)
		}
	}
	return t.wrapped.RoundTrip(req2)
}

func resolveHTTPClient(client *http.Client, apiKey string, timeout time.Duration) httpDoer {
	base := http.DefaultTransport
	if client != nil && client.Transport != nil {
		base = client.Transport
	}

	headers := http.Header{}
	headers.Set("Content-Type", contentTypeJSON)
	headers.Set("Accept", contentTypeJSON)
	if apiKey != "" {
		headers.Set(apiKeyHeader, apiKey)
	}

	out := &http.Client{Transport: &headerTransport{headers: headers, wrapped: base}}
	if client != nil {
		out.Timeout = client.Timeout
		out.CheckRedirect = client.CheckRedirect
		out.Jar = client.Jar
	}
	if timeout > 0 {
		out.Timeout = timeout
	}
	return out
}

func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultURL
	}
	return raw
}
