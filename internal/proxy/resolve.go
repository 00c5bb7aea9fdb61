package proxy

import (
	"net/url"
	"os"
	"strings"

	"github.com/GriffinCanCode/wdremote/internal/wderr"
)

// Env looks up an environment variable. The zero value reads nothing.
type Env func(key string) string

// OSEnv reads the process environment.
func OSEnv() Env {
	return os.Getenv
}

// MapEnv serves lookups from a fixed snapshot.
func MapEnv(vars map[string]string) Env {
	return func(key string) string {
		return vars[key]
	}
}

// first returns the first non-empty value among keys.
func (e Env) first(keys ...string) string {
	if e == nil {
		return ""
	}
	for _, k := range keys {
		if v := e(k); v != "" {
			return v
		}
	}
	return ""
}

// NoProxy returns the union of no_proxy and NO_PROXY entries.
func (e Env) NoProxy() []string {
	if e == nil {
		return nil
	}
	entries := SplitList(e("no_proxy"))
	return append(entries, SplitList(e("NO_PROXY"))...)
}

// Resolve derives the proxy URL to use for target. An empty string means a
// direct connection. Precedence: explicit descriptor, then ignore, then the
// environment, which is read on every call.
func Resolve(target *url.URL, d *Descriptor, ignore bool, env Env) (string, error) {
	if target == nil {
		return "", nil
	}

	var raw string
	switch {
	case d != nil:
		switch d.Type {
		case TypeManual:
			raw = fromManual(target, d)
		case TypeSystem:
			raw = fromEnv(target, env)
		default:
			return "", nil
		}
	case ignore:
		return "", nil
	default:
		raw = fromEnv(target, env)
	}

	if raw == "" {
		return "", nil
	}
	if _, err := Parse(raw); err != nil {
		return "", err
	}
	return raw, nil
}

func fromManual(target *url.URL, d *Descriptor) string {
	if Bypass(target.Host, d.NoProxy) {
		return ""
	}
	selected := d.HTTPProxy
	if isHTTPS(target) {
		selected = d.SSLProxy
	}
	if selected == "" {
		return d.socksURL()
	}
	return withDefaultScheme(selected)
}

// withDefaultScheme prefixes http:// to a bare host[:port] entry, the form
// W3C proxy capabilities use.
func withDefaultScheme(raw string) string {
	if strings.Contains(raw, "://") {
		return raw
	}
	return "http://" + raw
}

func fromEnv(target *url.URL, env Env) string {
	if Bypass(target.Host, env.NoProxy()) {
		return ""
	}
	if isHTTPS(target) {
		return env.first("https_proxy", "HTTPS_PROXY")
	}
	return env.first("http_proxy", "HTTP_PROXY")
}

func isHTTPS(target *url.URL) bool {
	return strings.EqualFold(target.Scheme, "https")
}

// IsSOCKS reports whether a proxy URL uses a SOCKS5 scheme.
func IsSOCKS(raw string) bool {
	scheme, _, ok := strings.Cut(raw, "://")
	if !ok {
		return false
	}
	switch strings.ToLower(scheme) {
	case "socks5", "socks5h":
		return true
	}
	return false
}

// Parse validates a proxy URL and returns it without userinfo.
func Parse(raw string) (*url.URL, error) {
	bare, _, err := SplitAuth(raw)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(bare)
	if err != nil {
		return nil, wderr.NewProxyResolutionError(raw, "invalid proxy URL", err)
	}
	if u.Host == "" {
		return nil, wderr.NewProxyResolutionError(raw, "proxy URL has no host", nil)
	}
	return u, nil
}
