package client

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	timeout = 30 * time.Second

	// UserAgent identifies outbound requests made by the jobmap tools
	UserAgent = "jobmap/1.0 (+https://github.com/fr4nk3nst1ner/jobmap)"
)

// CreateHTTPClient creates the HTTP client used for outbound API calls,
// routed through proxyURL when one is given
func CreateHTTPClient(proxyURL string) (*http.Client, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		ForceAttemptHTTP2:   true,
	}

	if proxyURL != "" {
		proxy, err := url.Parse(proxyURL)
		if err != nil || proxy.Scheme == "" || proxy.Host == "" {
			return nil, fmt.Errorf("invalid proxy url %q", proxyURL)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	return &http.Client{
		Transport: &userAgentTransport{next: transport},
		Timeout:   timeout,
	}, nil
}

type userAgentTransport struct {
	next http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", UserAgent)
	}
	return t.next.RoundTrip(req)
}
