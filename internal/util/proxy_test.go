package util

import (
	"net/http"
	"testing"
)

func mustRequest(t *testing.T, rawURL string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		t.Fatalf("NewRequest(%q): %v", rawURL, err)
	}
	return req
}

func TestNewProxyFuncSchemeSelection(t *testing.T) {
	proxy := NewProxyFunc("http://proxy-a:3128", "http://proxy-b:3128", "")

	u, err := proxy(mustRequest(t, "http://example.com/"))
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	if u == nil || u.Host != "proxy-a:3128" {
		t.Errorf("http request routed to %v, want proxy-a:3128", u)
	}

	u, err = proxy(mustRequest(t, "https://example.com/"))
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	if u == nil || u.Host != "proxy-b:3128" {
		t.Errorf("https request routed to %v, want proxy-b:3128", u)
	}
}

func TestNewProxyFuncHTTPProxyCoversHTTPS(t *testing.T) {
	proxy := NewProxyFunc("http://proxy-a:3128", "", "")

	u, err := proxy(mustRequest(t, "https://example.com/"))
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	if u == nil || u.Host != "proxy-a:3128" {
		t.Errorf("https request routed to %v, want proxy-a:3128", u)
	}
}

func TestNewProxyFuncNoProxyBypass(t *testing.T) {
	proxy := NewProxyFunc("http://proxy-a:3128", "", "localhost, .internal.example.com")

	cases := []struct {
		url    string
		bypass bool
	}{
		{"http://localhost:11434/api/generate", true},
		{"http://api.internal.example.com/v1", true},
		{"http://example.com/", false},
	}
	for _, tc := range cases {
		u, err := proxy(mustRequest(t, tc.url))
		if err != nil {
			t.Fatalf("proxy(%q): %v", tc.url, err)
		}
		if tc.bypass && u != nil {
			t.Errorf("%s: expected bypass, got proxy %v", tc.url, u)
		}
		if !tc.bypass && u == nil {
			t.Errorf("%s: expected proxy, got direct", tc.url)
		}
	}
}
