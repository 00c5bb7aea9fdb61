package remote

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	xproxy "golang.org/x/net/proxy"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/wdremote/internal/logging"
	"github.com/GriffinCanCode/wdremote/internal/proxy"
	"github.com/GriffinCanCode/wdremote/internal/resilience"
	"github.com/GriffinCanCode/wdremote/internal/wderr"
)

// DefaultTimeout bounds each call when keep-alive is disabled and no
// explicit timeout is configured.
const DefaultTimeout = 120 * time.Second

const (
	defaultDialTimeout = 30 * time.Second
	defaultSOCKSPort   = "1080"
)

// ManagerKind identifies how a ConnectionManager reaches the remote end.
type ManagerKind int

const (
	ManagerDirect ManagerKind = iota
	ManagerProxy
	ManagerSOCKS
)

func (k ManagerKind) String() string {
	switch k {
	case ManagerProxy:
		return "proxy"
	case ManagerSOCKS:
		return "socks"
	default:
		return "direct"
	}
}

// CertReqs is the TLS verification mode of a manager.
type CertReqs int

const (
	CertRequired CertReqs = iota
	CertNone
)

func (c CertReqs) String() string {
	if c == CertNone {
		return "CERT_NONE"
	}
	return "CERT_REQUIRED"
}

// RetryPolicy configures transport-level retries. Only connection
// failures and 429/502/503/504 responses are retried.
type RetryPolicy struct {
	Max     int
	WaitMin time.Duration
	WaitMax time.Duration
}

// BreakerPolicy opens the circuit after Threshold consecutive transport
// failures and probes again after Cooldown. Zero fields take the
// resilience package defaults.
type BreakerPolicy struct {
	Threshold int
	Cooldown  time.Duration
}

// PoolOverrides are low-level transport settings. Any non-zero field wins
// over the value computed from the ClientConfig.
type PoolOverrides struct {
	// Timeout replaces the whole per-call timeout.
	Timeout time.Duration
	// ConnectTimeout bounds dialing, ReadTimeout bounds the wait for
	// response headers.
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	Retry *RetryPolicy

	// Breaker fails commands fast after repeated transport failures.
	Breaker *BreakerPolicy

	// PoolMaxSize caps idle connections per host. With Block set it also
	// caps open connections, so callers wait for a free one.
	PoolMaxSize int
	Block       bool

	// RateLimit is in requests per second. Zero is unlimited.
	RateLimit float64
	RateBurst int
}

func (po *PoolOverrides) validate() error {
	switch {
	case po.Timeout < 0, po.ConnectTimeout < 0, po.ReadTimeout < 0:
		return wderr.NewConfigurationError("pool_overrides", "timeouts must not be negative", nil)
	case po.PoolMaxSize < 0:
		return wderr.NewConfigurationError("pool_overrides", "pool size must not be negative", nil)
	case po.RateLimit < 0 || po.RateBurst < 0:
		return wderr.NewConfigurationError("pool_overrides", "rate limit must not be negative", nil)
	case po.Retry != nil && po.Retry.Max < 0:
		return wderr.NewConfigurationError("pool_overrides", "retry count must not be negative", nil)
	case po.Breaker != nil && (po.Breaker.Threshold < 0 || po.Breaker.Cooldown < 0):
		return wderr.NewConfigurationError("pool_overrides", "breaker settings must not be negative", nil)
	}
	return nil
}

// ConnectionManager is a pooled transport for one remote end. It is built
// once and replaced, never mutated, when settings change.
type ConnectionManager struct {
	Kind ManagerKind

	// Proxy is the proxy endpoint without userinfo; nil for direct.
	Proxy        *url.URL
	ProxyHeaders http.Header

	// Timeout is the per-call timeout; zero blocks indefinitely.
	Timeout        time.Duration
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	CertReqs CertReqs
	CACerts  string

	Retry       *RetryPolicy
	Breaker     *BreakerPolicy
	PoolMaxSize int
	Block       bool
	RateLimit   float64

	transport *http.Transport
	client    *resty.Client
	limiter   *rate.Limiter
	breaker   *resilience.Breaker

	// resolved is the raw proxy decision the manager was built for.
	resolved string
}

// BuildManager resolves the proxy for cfg and builds a pooled transport.
func BuildManager(cfg *ClientConfig, logger *logging.Logger) (*ConnectionManager, error) {
	raw, err := cfg.ProxyURL()
	if err != nil {
		return nil, err
	}
	return buildManager(cfg, raw, logger)
}

func buildManager(cfg *ClientConfig, raw string, logger *logging.Logger) (*ConnectionManager, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	po := cfg.PoolOverrides
	if po == nil {
		po = &PoolOverrides{}
	}
	if err := po.validate(); err != nil {
		return nil, err
	}

	m := &ConnectionManager{
		Timeout:        callTimeout(cfg),
		ConnectTimeout: po.ConnectTimeout,
		ReadTimeout:    po.ReadTimeout,
		Retry:          po.Retry,
		Breaker:        po.Breaker,
		PoolMaxSize:    po.PoolMaxSize,
		Block:          po.Block,
		RateLimit:      po.RateLimit,
		resolved:       raw,
	}
	if po.Timeout > 0 {
		m.Timeout = po.Timeout
	}

	var transport *http.Transport
	if cfg.KeepAlive {
		transport = cleanhttp.DefaultPooledTransport()
	} else {
		transport = cleanhttp.DefaultTransport()
	}
	transport.Proxy = nil
	transport.ResponseHeaderTimeout = m.ReadTimeout

	dialer := &net.Dialer{Timeout: defaultDialTimeout, KeepAlive: 30 * time.Second}
	if m.ConnectTimeout > 0 {
		dialer.Timeout = m.ConnectTimeout
	}
	transport.DialContext = dialer.DialContext

	tlsConfig, err := m.tlsConfig(cfg)
	if err != nil {
		return nil, err
	}
	transport.TLSClientConfig = tlsConfig

	if m.PoolMaxSize > 0 {
		transport.MaxIdleConnsPerHost = m.PoolMaxSize
	}
	if m.Block && transport.MaxIdleConnsPerHost > 0 {
		transport.MaxConnsPerHost = transport.MaxIdleConnsPerHost
	}

	var rt http.RoundTripper = transport
	if raw != "" {
		rt, err = m.routeViaProxy(transport, dialer, raw)
		if err != nil {
			return nil, err
		}
	}

	if m.Retry != nil {
		rt = retryingTransport(rt, m.Retry, logger)
	}

	m.transport = transport
	m.client = resty.NewWithClient(&http.Client{Transport: rt, Timeout: m.Timeout}).
		SetLogger(logger.Formatted()).
		SetJSONMarshaler(sonic.ConfigStd.Marshal).
		SetJSONUnmarshaler(sonic.ConfigStd.Unmarshal)

	m.limiter = rate.NewLimiter(rate.Inf, 0)
	if m.RateLimit > 0 {
		burst := po.RateBurst
		if burst == 0 {
			burst = max(1, int(m.RateLimit))
		}
		m.limiter = rate.NewLimiter(rate.Limit(m.RateLimit), burst)
	}

	if m.Breaker != nil {
		m.breaker = resilience.New(resilience.Settings{
			Threshold: uint32(m.Breaker.Threshold),
			Cooldown:  m.Breaker.Cooldown,
			OnStateChange: func(from, to resilience.State) {
				logger.Warn("circuit breaker state changed",
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		})
	}

	logger.Debug("built connection manager",
		zap.String("kind", m.Kind.String()),
		zap.Stringer("proxy", m.Proxy),
		zap.Duration("timeout", m.Timeout),
		zap.String("cert_reqs", m.CertReqs.String()),
	)
	return m, nil
}

// callTimeout applies the keep-alive rule: persistent connections block
// unless a timeout is set, one-shot connections are always bounded.
func callTimeout(cfg *ClientConfig) time.Duration {
	if cfg.Timeout > 0 {
		return cfg.Timeout
	}
	if cfg.KeepAlive {
		return 0
	}
	return DefaultTimeout
}

func (m *ConnectionManager) tlsConfig(cfg *ClientConfig) (*tls.Config, error) {
	tc := &tls.Config{MinVersion: tls.VersionTLS12}

	if cfg.IgnoreCertificates {
		m.CertReqs = CertNone
		tc.InsecureSkipVerify = true
		return tc, nil
	}

	m.CertReqs = CertRequired
	m.CACerts = cfg.CACerts
	if cfg.CACerts == "" {
		return tc, nil
	}

	// A plain-http remote end never verifies a certificate, so the bundle
	// is only read for https.
	target, err := cfg.target()
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(target.Scheme, "https") {
		return tc, nil
	}

	pem, err := os.ReadFile(cfg.CACerts)
	if err != nil {
		return nil, wderr.NewConfigurationError("ca_certs", "cannot read certificate bundle", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, wderr.NewConfigurationError("ca_certs", "no certificates found in "+cfg.CACerts, nil)
	}
	tc.RootCAs = pool
	return tc, nil
}

func (m *ConnectionManager) routeViaProxy(transport *http.Transport, dialer *net.Dialer, raw string) (http.RoundTripper, error) {
	bare, auth, err := proxy.SplitAuth(raw)
	if err != nil {
		return nil, err
	}
	u, err := proxy.Parse(bare)
	if err != nil {
		return nil, err
	}
	m.Proxy = u

	if proxy.IsSOCKS(raw) {
		m.Kind = ManagerSOCKS

		var creds *xproxy.Auth
		if auth != "" {
			user, password := proxy.SplitUserPassword(auth)
			creds = &xproxy.Auth{User: user, Password: password}
		}
		addr := u.Host
		if u.Port() == "" {
			addr = net.JoinHostPort(u.Hostname(), defaultSOCKSPort)
		}
		d, err := xproxy.SOCKS5("tcp", addr, creds, dialer)
		if err != nil {
			return nil, wderr.NewProxyResolutionError(bare, "cannot create SOCKS dialer", err)
		}
		cd, ok := d.(xproxy.ContextDialer)
		if !ok {
			return nil, wderr.NewProxyResolutionError(bare, "SOCKS dialer does not support contexts", nil)
		}
		transport.DialContext = cd.DialContext
		return transport, nil
	}

	m.Kind = ManagerProxy
	transport.Proxy = http.ProxyURL(u)
	if auth == "" {
		return transport, nil
	}

	m.ProxyHeaders = http.Header{"Proxy-Authorization": {proxy.BasicAuth(auth)}}
	transport.ProxyConnectHeader = m.ProxyHeaders.Clone()
	return &proxyAuthTransport{base: transport, header: m.ProxyHeaders}, nil
}

// proxyAuthTransport adds proxy credentials to plain-http requests, which
// are forwarded by the proxy rather than tunnelled through CONNECT.
type proxyAuthTransport struct {
	base   http.RoundTripper
	header http.Header
}

func (t *proxyAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "http" {
		return t.base.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	for k, v := range t.header {
		req.Header[k] = v
	}
	return t.base.RoundTrip(req)
}

func retryingTransport(base http.RoundTripper, policy *RetryPolicy, logger *logging.Logger) http.RoundTripper {
	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{Transport: base}
	rc.RetryMax = policy.Max
	if policy.WaitMin > 0 {
		rc.RetryWaitMin = policy.WaitMin
	}
	if policy.WaitMax > 0 {
		rc.RetryWaitMax = policy.WaitMax
	}
	rc.Logger = logger.Leveled()
	rc.CheckRetry = checkRetry
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return &retryablehttp.RoundTripper{Client: rc}
}

// checkRetry leaves WebDriver error statuses alone: a 500 carries a
// protocol error, not a flaky gateway.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	switch resp.StatusCode {
	case http.StatusTooManyRequests, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true, nil
	}
	return false, nil
}

// Client returns the underlying resty client.
func (m *ConnectionManager) Client() *resty.Client {
	return m.client
}

// Transport returns the pooled transport.
func (m *ConnectionManager) Transport() *http.Transport {
	return m.transport
}

// Request waits for the rate limiter and returns a request bound to ctx.
func (m *ConnectionManager) Request(ctx context.Context) (*resty.Request, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	return m.client.R().SetContext(ctx), nil
}

// allow checks the circuit breaker, if any. A nil return must be paired
// with record.
func (m *ConnectionManager) allow() error {
	if m.breaker == nil {
		return nil
	}
	return m.breaker.Allow()
}

func (m *ConnectionManager) record(reached bool) {
	if m.breaker != nil {
		m.breaker.Record(reached)
	}
}

// BreakerState reports the circuit breaker state; closed when there is no
// breaker.
func (m *ConnectionManager) BreakerState() resilience.State {
	if m.breaker == nil {
		return resilience.StateClosed
	}
	return m.breaker.State()
}

// Close drops idle pooled connections.
func (m *ConnectionManager) Close() {
	if m != nil && m.transport != nil {
		m.transport.CloseIdleConnections()
	}
}
