package httpclient

import (
	"fmt"
	"net/http"
	"net/url"
)

// ProxySettings describes an optional outbound HTTP proxy.
type ProxySettings struct {
	Enabled  bool
	Hostname string
	Port     int
	Username string
	Password string
}

// HasProxy returns true if proxy is enabled and configured.
func (p ProxySettings) HasProxy() bool {
	return p.Enabled && p.Hostname != "" && p.Port > 0
}

// URL returns the proxy URL, with credentials when both are set.
func (p ProxySettings) URL() *url.URL {
	if !p.HasProxy() {
		return nil
	}
	u := &url.URL{
		Scheme: "http",
		Host:   fmt.Sprintf("%s:%d", p.Hostname, p.Port),
	}
	if p.Username != "" && p.Password != "" {
		u.User = url.UserPassword(p.Username, p.Password)
	}
	return u
}

// ProxyFunc returns a transport proxy selector, or nil when no proxy is configured.
func (p ProxySettings) ProxyFunc() func(*http.Request) (*url.URL, error) {
	u := p.URL()
	if u == nil {
		return nil
	}
	return http.ProxyURL(u)
}
