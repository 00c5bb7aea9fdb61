package remote

import (
	"maps"
	"time"

	"github.com/GriffinCanCode/wdremote/internal/logging"
	"github.com/GriffinCanCode/wdremote/internal/monitoring"
	"github.com/GriffinCanCode/wdremote/internal/proxy"
)

// Option adjusts a ClientConfig or the connection built from it.
type Option func(*settings)

type settings struct {
	config  *ClientConfig
	logger  *logging.Logger
	metrics *monitoring.Metrics
	legacy  LegacyOverrides
}

func newSettings(cfg *ClientConfig) *settings {
	return &settings{config: cfg}
}

func (s *settings) apply(opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
}

// LegacyOverrides carries the user agent and extra headers that older
// callers set once for every connection. Values configured on the
// ClientConfig win over these.
type LegacyOverrides struct {
	UserAgent    string
	ExtraHeaders map[string]string
}

// WithKeepAlive toggles persistent connections
func WithKeepAlive(enabled bool) Option {
	return func(s *settings) { s.config.KeepAlive = enabled }
}

// WithTimeout sets the per-call timeout
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.config.Timeout = d }
}

// WithCACerts sets the PEM bundle used to verify the remote end
func WithCACerts(path string) Option {
	return func(s *settings) { s.config.CACerts = path }
}

// WithIgnoreCertificates disables TLS verification
func WithIgnoreCertificates(ignore bool) Option {
	return func(s *settings) { s.config.IgnoreCertificates = ignore }
}

// WithProxy sets an explicit proxy, which beats the environment
func WithProxy(d *proxy.Descriptor) Option {
	return func(s *settings) { s.config.Proxy = d }
}

// WithIgnoreProxy skips the proxy environment variables
func WithIgnoreProxy(ignore bool) Option {
	return func(s *settings) { s.config.IgnoreProxy = ignore }
}

// WithBasicAuth sends Basic credentials
func WithBasicAuth(username, password string) Option {
	return func(s *settings) {
		s.config.AuthType = AuthBasic
		s.config.Username = username
		s.config.Password = password
	}
}

// WithBearerToken sends a Bearer token
func WithBearerToken(token string) Option {
	return func(s *settings) {
		s.config.AuthType = AuthBearer
		s.config.Token = token
	}
}

// WithAPIKey sends the token as X-API-Key
func WithAPIKey(token string) Option {
	return func(s *settings) {
		s.config.AuthType = AuthXAPIKey
		s.config.Token = token
	}
}

// WithExtraHeaders merges headers sent with every command
func WithExtraHeaders(headers map[string]string) Option {
	return func(s *settings) {
		if s.config.ExtraHeaders == nil {
			s.config.ExtraHeaders = make(map[string]string, len(headers))
		}
		maps.Copy(s.config.ExtraHeaders, headers)
	}
}

// WithUserAgent replaces the default User-Agent
func WithUserAgent(ua string) Option {
	return func(s *settings) { s.config.UserAgent = ua }
}

// WithPoolOverrides passes low-level transport settings through
func WithPoolOverrides(po *PoolOverrides) Option {
	return func(s *settings) { s.config.PoolOverrides = po }
}

// WithEnv replaces the environment lookup used for proxy resolution
func WithEnv(env proxy.Env) Option {
	return func(s *settings) { s.config.Env = env }
}

// WithLogger sets the connection logger
func WithLogger(logger *logging.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithMetrics records command metrics
func WithMetrics(m *monitoring.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithLegacyOverrides applies connection-wide user agent and header defaults
func WithLegacyOverrides(lo LegacyOverrides) Option {
	return func(s *settings) {
		s.legacy = LegacyOverrides{
			UserAgent:    lo.UserAgent,
			ExtraHeaders: maps.Clone(lo.ExtraHeaders),
		}
	}
}
