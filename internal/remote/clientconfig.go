package remote

import (
	"fmt"
	"maps"
	"net/url"
	"strings"
	"time"

	"github.com/GriffinCanCode/wdremote/internal/proxy"
	"github.com/GriffinCanCode/wdremote/internal/wderr"
)

// AuthType selects the credential header sent with every command.
type AuthType int

const (
	AuthNone AuthType = iota
	AuthBasic
	AuthBearer
	AuthXAPIKey
)

// String returns the configuration spelling of the auth type
func (a AuthType) String() string {
	switch a {
	case AuthBasic:
		return "basic"
	case AuthBearer:
		return "bearer"
	case AuthXAPIKey:
		return "x_api_key"
	default:
		return "none"
	}
}

// ParseAuthType converts "none", "basic", "bearer" or "x_api_key".
func ParseAuthType(s string) (AuthType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return AuthNone, nil
	case "basic":
		return AuthBasic, nil
	case "bearer":
		return AuthBearer, nil
	case "x_api_key", "x-api-key", "apikey":
		return AuthXAPIKey, nil
	default:
		return AuthNone, wderr.NewConfigurationError("auth_type", fmt.Sprintf("unknown auth type %q", s), nil)
	}
}

// ClientConfig holds the connection parameters for one remote end.
//
// A zero ClientConfig has KeepAlive disabled; NewClientConfig starts from
// the usual defaults instead.
type ClientConfig struct {
	RemoteServerAddr string
	KeepAlive        bool

	// Timeout is the per-call timeout. Zero means unset.
	Timeout time.Duration

	// CACerts is a PEM bundle path. Empty uses the system roots.
	CACerts            string
	IgnoreCertificates bool

	Proxy       *proxy.Descriptor
	IgnoreProxy bool

	AuthType AuthType
	Username string
	Password string
	Token    string

	ExtraHeaders map[string]string
	UserAgent    string

	PoolOverrides *PoolOverrides

	// Env is consulted for HTTP_PROXY, HTTPS_PROXY and NO_PROXY on every
	// resolution. Nil reads the process environment.
	Env proxy.Env
}

// NewClientConfig returns a validated configuration for addr with
// keep-alive enabled.
func NewClientConfig(addr string, opts ...Option) (*ClientConfig, error) {
	s := newSettings(defaultConfig(addr))
	s.apply(opts)
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	return s.config, nil
}

func defaultConfig(addr string) *ClientConfig {
	return &ClientConfig{
		RemoteServerAddr: addr,
		KeepAlive:        true,
	}
}

// Validate checks the address, auth credentials and timeouts.
func (c *ClientConfig) Validate() error {
	if strings.TrimSpace(c.RemoteServerAddr) == "" {
		return wderr.NewConfigurationError("remote_server_addr", "address is required", wderr.ErrEmptyAddress)
	}
	if _, err := c.target(); err != nil {
		return err
	}

	switch c.AuthType {
	case AuthNone:
	case AuthBasic:
		if c.Username == "" || c.Password == "" {
			return wderr.NewConfigurationError("auth_type", "basic auth requires username and password", wderr.ErrMissingCredentials)
		}
	case AuthBearer, AuthXAPIKey:
		if c.Token == "" {
			return wderr.NewConfigurationError("auth_type", c.AuthType.String()+" auth requires a token", wderr.ErrMissingCredentials)
		}
	default:
		return wderr.NewConfigurationError("auth_type", fmt.Sprintf("unsupported auth type %d", c.AuthType), nil)
	}

	if c.Timeout < 0 {
		return wderr.NewConfigurationError("timeout", "must not be negative", nil)
	}
	if c.PoolOverrides != nil {
		if err := c.PoolOverrides.validate(); err != nil {
			return err
		}
	}
	return nil
}

// target parses the remote address.
func (c *ClientConfig) target() (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(c.RemoteServerAddr))
	if err != nil {
		return nil, wderr.NewConfigurationError("remote_server_addr", "invalid URL", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, wderr.NewConfigurationError("remote_server_addr", fmt.Sprintf("unsupported scheme %q", u.Scheme), nil)
	}
	if u.Host == "" {
		return nil, wderr.NewConfigurationError("remote_server_addr", "missing host", nil)
	}
	return u, nil
}

func (c *ClientConfig) env() proxy.Env {
	if c.Env == nil {
		return proxy.OSEnv()
	}
	return c.Env
}

// AuthHeader returns the header derived from AuthType, or an empty map.
func (c *ClientConfig) AuthHeader() map[string]string {
	switch c.AuthType {
	case AuthBasic:
		return map[string]string{"Authorization": proxy.BasicAuth(c.Username + ":" + c.Password)}
	case AuthBearer:
		return map[string]string{"Authorization": "Bearer " + c.Token}
	case AuthXAPIKey:
		return map[string]string{"X-API-Key": c.Token}
	default:
		return map[string]string{}
	}
}

// ProxyURL resolves the proxy for the remote address, userinfo included.
// An empty string means a direct connection.
func (c *ClientConfig) ProxyURL() (string, error) {
	target, err := c.target()
	if err != nil {
		return "", err
	}
	return proxy.Resolve(target, c.Proxy, c.IgnoreProxy, c.env())
}

// SeparateProxyAuth resolves the proxy and splits off "user:password".
func (c *ClientConfig) SeparateProxyAuth() (proxyURL, auth string, err error) {
	raw, err := c.ProxyURL()
	if err != nil || raw == "" {
		return "", "", err
	}
	return proxy.SplitAuth(raw)
}

// Clone returns a deep copy. The proxy descriptor is shared since it is
// read-only once built.
func (c *ClientConfig) Clone() *ClientConfig {
	out := *c
	out.ExtraHeaders = maps.Clone(c.ExtraHeaders)
	if c.PoolOverrides != nil {
		po := *c.PoolOverrides
		if po.Retry != nil {
			r := *po.Retry
			po.Retry = &r
		}
		if po.Breaker != nil {
			b := *po.Breaker
			po.Breaker = &b
		}
		out.PoolOverrides = &po
	}
	return &out
}
