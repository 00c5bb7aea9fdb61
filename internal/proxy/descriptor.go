package proxy

import (
	"fmt"
	"strings"
)

// Type is the W3C proxyType of a proxy capability.
type Type int

const (
	TypeUnspecified Type = iota
	TypeDirect
	TypeManual
	TypePAC
	TypeAutoDetect
	TypeSystem
)

// String returns the capability spelling of the type
func (t Type) String() string {
	switch t {
	case TypeDirect:
		return "direct"
	case TypeManual:
		return "manual"
	case TypePAC:
		return "pac"
	case TypeAutoDetect:
		return "autodetect"
	case TypeSystem:
		return "system"
	default:
		return "unspecified"
	}
}

// ParseType converts a proxyType string, case-insensitively.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "direct":
		return TypeDirect, nil
	case "manual":
		return TypeManual, nil
	case "pac":
		return TypePAC, nil
	case "autodetect":
		return TypeAutoDetect, nil
	case "system":
		return TypeSystem, nil
	case "", "unspecified":
		return TypeUnspecified, nil
	default:
		return TypeUnspecified, fmt.Errorf("unknown proxy type %q", s)
	}
}

// Descriptor is an explicit proxy configuration. It is built once per
// client configuration and only read afterwards.
type Descriptor struct {
	Type       Type
	HTTPProxy  string
	SSLProxy   string
	SocksProxy string

	SocksUsername string
	SocksPassword string

	// NoProxy lists hosts that bypass a manual proxy.
	NoProxy []string
}

// Direct returns a descriptor that never routes through a proxy.
func Direct() *Descriptor {
	return &Descriptor{Type: TypeDirect}
}

// System returns a descriptor that defers to the proxy environment variables.
func System() *Descriptor {
	return &Descriptor{Type: TypeSystem}
}

// Manual returns a descriptor with explicit per-scheme proxies.
func Manual(httpProxy, sslProxy string) *Descriptor {
	return &Descriptor{Type: TypeManual, HTTPProxy: httpProxy, SSLProxy: sslProxy}
}

// FromCapability builds a descriptor from a W3C proxy capability object,
// e.g. {"proxyType": "manual", "httpProxy": "host:3128", "noProxy": ["localhost"]}.
func FromCapability(raw map[string]any) (*Descriptor, error) {
	kind, _ := raw["proxyType"].(string)
	t, err := ParseType(kind)
	if err != nil {
		return nil, err
	}

	d := &Descriptor{Type: t}
	d.HTTPProxy, _ = raw["httpProxy"].(string)
	d.SSLProxy, _ = raw["sslProxy"].(string)
	d.SocksProxy, _ = raw["socksProxy"].(string)
	d.SocksUsername, _ = raw["socksUsername"].(string)
	d.SocksPassword, _ = raw["socksPassword"].(string)

	switch v := raw["noProxy"].(type) {
	case string:
		d.NoProxy = SplitList(v)
	case []string:
		d.NoProxy = append([]string(nil), v...)
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				d.NoProxy = append(d.NoProxy, s)
			}
		}
	}

	return d, nil
}

// socksURL renders the SOCKS entry as a socks5 URL, adding credentials if set.
func (d *Descriptor) socksURL() string {
	if d.SocksProxy == "" {
		return ""
	}
	if strings.Contains(d.SocksProxy, "://") {
		return d.SocksProxy
	}
	userinfo := ""
	if d.SocksUsername != "" {
		userinfo = d.SocksUsername + ":" + d.SocksPassword + "@"
	}
	return "socks5://" + userinfo + d.SocksProxy
}
