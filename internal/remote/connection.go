package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/wdremote/internal/logging"
	"github.com/GriffinCanCode/wdremote/internal/monitoring"
	"github.com/GriffinCanCode/wdremote/internal/proxy"
	"github.com/GriffinCanCode/wdremote/internal/tracing"
	"github.com/GriffinCanCode/wdremote/internal/version"
	"github.com/GriffinCanCode/wdremote/internal/wderr"
)

const (
	contentTypeJSON = "application/json;charset=UTF-8"

	embeddedCredentialsWarning = "Embedding username and password in URL could be insecure, use ClientConfig instead"
)

// Connection executes WebDriver commands against one remote end. It owns
// its configuration, a lazily built ConnectionManager and a command
// registry.
type Connection struct {
	mu       sync.Mutex
	config   *ClientConfig
	manager  *ConnectionManager
	registry *Registry

	logger  *logging.Logger
	metrics *monitoring.Metrics
	legacy  LegacyOverrides
}

// New creates a connection to addr with keep-alive enabled.
func New(addr string, opts ...Option) (*Connection, error) {
	return newConnection(defaultConfig(addr), opts)
}

// NewWithConfig creates a connection from a prepared configuration. The
// configuration is copied; later changes to cfg have no effect.
func NewWithConfig(cfg *ClientConfig, opts ...Option) (*Connection, error) {
	if cfg == nil {
		return nil, wderr.NewConfigurationError("client_config", "configuration is required", nil)
	}
	return newConnection(cfg.Clone(), opts)
}

func newConnection(cfg *ClientConfig, opts []Option) (*Connection, error) {
	s := newSettings(cfg)
	s.apply(opts)
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	logger := s.logger
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Connection{
		config:   s.config,
		registry: NewRegistry(),
		logger:   logger,
		metrics:  s.metrics,
		legacy:   s.legacy,
	}, nil
}

// Config returns a copy of the current configuration.
func (c *Connection) Config() *ClientConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config.Clone()
}

// Registry returns the connection's command registry.
func (c *Connection) Registry() *Registry {
	return c.registry
}

// AddCommand registers or replaces a command on this connection.
func (c *Connection) AddCommand(name, method, template string) error {
	return c.registry.Register(name, method, template)
}

// Command returns the entry registered under name.
func (c *Connection) Command(name string) (CommandEntry, error) {
	return c.registry.Resolve(name)
}

// SetTimeout sets the per-call timeout used by the next manager.
func (c *Connection) SetTimeout(d time.Duration) {
	c.update(func(cfg *ClientConfig) { cfg.Timeout = d })
}

// Timeout returns the configured per-call timeout, zero if unset.
func (c *Connection) Timeout() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config.Timeout
}

// ResetTimeout clears the per-call timeout.
func (c *Connection) ResetTimeout() {
	c.SetTimeout(0)
}

// SetCertificateBundlePath sets the PEM bundle used by the next manager.
func (c *Connection) SetCertificateBundlePath(path string) {
	c.update(func(cfg *ClientConfig) { cfg.CACerts = path })
}

// CertificateBundlePath returns the configured PEM bundle path.
func (c *Connection) CertificateBundlePath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config.CACerts
}

// SetIgnoreCertificates toggles TLS verification for the next manager.
func (c *Connection) SetIgnoreCertificates(ignore bool) {
	c.update(func(cfg *ClientConfig) { cfg.IgnoreCertificates = ignore })
}

// update swaps in a modified copy of the configuration and drops the
// current manager so the next command builds a fresh one.
func (c *Connection) update(fn func(*ClientConfig)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cfg := c.config.Clone()
	fn(cfg)
	c.config = cfg

	c.manager.Close()
	c.manager = nil
}

// Manager returns the connection manager for the current configuration,
// building it if needed. A change in the resolved proxy also rebuilds it.
func (c *Connection) Manager() (*ConnectionManager, error) {
	_, m, err := c.prepare()
	return m, err
}

func (c *Connection) prepare() (*ClientConfig, *ConnectionManager, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := c.config.ProxyURL()
	if err != nil {
		return nil, nil, err
	}
	if c.manager != nil && c.manager.resolved == raw {
		return c.config, c.manager, nil
	}

	m, err := buildManager(c.config, raw, c.logger)
	if err != nil {
		return nil, nil, err
	}
	c.manager.Close()
	c.manager = m
	c.metrics.RecordManagerBuild(m.Kind.String())

	return c.config, m, nil
}

// Headers returns the headers sent to target. Later sources win: base
// headers, credentials embedded in target, configured auth, legacy extra
// headers, then configured extra headers.
func (c *Connection) Headers(target *url.URL, keepAlive bool) map[string]string {
	c.mu.Lock()
	cfg := c.config
	c.mu.Unlock()
	return c.headers(cfg, target, keepAlive)
}

func (c *Connection) headers(cfg *ClientConfig, target *url.URL, keepAlive bool) map[string]string {
	ua := cfg.UserAgent
	if ua == "" {
		ua = c.legacy.UserAgent
	}
	if ua == "" {
		ua = version.UserAgent()
	}

	h := map[string]string{
		"Accept":       "application/json",
		"Content-Type": contentTypeJSON,
		"User-Agent":   ua,
	}
	if keepAlive {
		h["Connection"] = "keep-alive"
	}

	if target != nil && target.User != nil && target.User.Username() != "" {
		c.logger.Warn(embeddedCredentialsWarning, zap.String("host", target.Host))
		password, _ := target.User.Password()
		h["Authorization"] = proxy.BasicAuth(target.User.Username() + ":" + password)
	}

	for _, src := range []map[string]string{cfg.AuthHeader(), c.legacy.ExtraHeaders, cfg.ExtraHeaders} {
		for k, v := range src {
			setHeader(h, k, v)
		}
	}
	return h
}

// setHeader replaces any existing key that differs only in case.
func setHeader(h map[string]string, key, value string) {
	for existing := range h {
		if existing != key && strings.EqualFold(existing, key) {
			delete(h, existing)
		}
	}
	h[key] = value
}

// Execute runs a registered command. Placeholders in the command's URL
// template are filled from params and removed from the JSON body, which is
// only sent for POST and PUT.
//
// A remote error envelope is not an error here: it is returned in
// Response.Err. Transport failures, malformed bodies, unknown commands and
// missing parameters are returned as errors.
func (c *Connection) Execute(ctx context.Context, name string, params map[string]any) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	entry, err := c.registry.Resolve(name)
	if err != nil {
		c.metrics.RecordCommand("unknown", "", monitoring.OutcomeRejected, 0, 0, 0)
		return nil, err
	}

	path, body, err := fillTemplate(entry, params)
	if err != nil {
		c.metrics.RecordCommand(name, entry.Method, monitoring.OutcomeRejected, 0, 0, 0)
		return nil, err
	}

	var payload []byte
	if hasBody(entry.Method) {
		payload, err = sonic.ConfigStd.Marshal(body)
		if err != nil {
			c.metrics.RecordCommand(name, entry.Method, monitoring.OutcomeRejected, 0, 0, 0)
			return nil, fmt.Errorf("encode %s parameters: %w", name, err)
		}
	}

	cfg, mgr, err := c.prepare()
	if err != nil {
		c.metrics.RecordCommand(name, entry.Method, monitoring.OutcomeRejected, 0, 0, 0)
		return nil, err
	}

	target, err := cfg.target()
	if err != nil {
		c.metrics.RecordCommand(name, entry.Method, monitoring.OutcomeRejected, 0, 0, 0)
		return nil, err
	}
	endpoint := commandURL(target, path)
	traced := tracing.GetTraceID(ctx) != ""

	span, ctx := tracing.StartSpan(ctx, name)
	span.SetTag("http.method", entry.Method)
	span.SetTag("http.url", endpoint)
	defer func() {
		span.Finish()
		span.Log(c.logger.Logger)
	}()

	req, err := mgr.Request(ctx)
	if err != nil {
		c.metrics.RecordCommand(name, entry.Method, monitoring.OutcomeRejected, 0, 0, 0)
		span.SetError(err)
		return nil, wderr.NewTransportError(entry.Method, endpoint, err)
	}
	if err := mgr.allow(); err != nil {
		c.metrics.RecordCommand(name, entry.Method, monitoring.OutcomeRejected, 0, 0, 0)
		span.SetError(err)
		return nil, wderr.NewTransportError(entry.Method, endpoint, err)
	}
	headers := c.headers(cfg, target, cfg.KeepAlive)
	if traced {
		tracing.InjectTraceContext(ctx, headers)
	}
	req.SetHeaders(headers)
	if payload != nil {
		req.SetBody(payload)
	}

	timer := monitoring.NewTimer(c.metrics, name, entry.Method)
	resp, err := req.Execute(entry.Method, endpoint)
	mgr.record(err == nil)
	if err != nil {
		timer.Stop(monitoring.OutcomeTransportError, len(payload), 0)
		span.SetError(err)
		return nil, wderr.NewTransportError(entry.Method, endpoint, err)
	}
	span.SetStatus(resp.StatusCode())

	result, err := normalize(entry.Method, endpoint, resp.StatusCode(), resp.Header().Get("Content-Type"), resp.Body())
	switch {
	case err != nil:
		timer.Stop(monitoring.OutcomeProtocolError, len(payload), len(resp.Body()))
		span.SetError(err)
		return nil, err
	case !result.OK():
		timer.Stop(monitoring.OutcomeRemoteError, len(payload), len(resp.Body()))
		span.SetTag("error", result.Err.Code)
	default:
		timer.Stop(monitoring.OutcomeOK, len(payload), len(resp.Body()))
	}
	return result, nil
}

// Close releases pooled connections. The connection stays usable.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.manager.Close()
	c.manager = nil
}

func hasBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPut
}

// commandURL joins the remote address, minus userinfo, with path.
func commandURL(target *url.URL, path string) string {
	base := *target
	base.User = nil
	return strings.TrimRight(base.String(), "/") + path
}
