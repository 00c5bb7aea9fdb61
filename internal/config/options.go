package config

import (
	"github.com/GriffinCanCode/wdremote/internal/logging"
	"github.com/GriffinCanCode/wdremote/internal/proxy"
	"github.com/GriffinCanCode/wdremote/internal/remote"
	"github.com/GriffinCanCode/wdremote/internal/wderr"
)

// ClientOptions translates the configuration into remote options. The
// remote URL is not included; pass it to remote.New.
func (c *Config) ClientOptions() ([]remote.Option, error) {
	opts := []remote.Option{
		remote.WithKeepAlive(c.Remote.KeepAlive),
		remote.WithTimeout(c.Remote.Timeout.Std()),
		remote.WithCACerts(c.Remote.CACerts),
		remote.WithIgnoreCertificates(c.Remote.IgnoreCertificates),
		remote.WithIgnoreProxy(c.Proxy.Ignore),
	}
	if c.Remote.UserAgent != "" {
		opts = append(opts, remote.WithUserAgent(c.Remote.UserAgent))
	}
	if len(c.Remote.ExtraHeaders) > 0 {
		opts = append(opts, remote.WithExtraHeaders(c.Remote.ExtraHeaders))
	}

	d, err := c.Proxy.Descriptor()
	if err != nil {
		return nil, err
	}
	if d != nil {
		opts = append(opts, remote.WithProxy(d))
	}

	auth, err := c.Auth.option()
	if err != nil {
		return nil, err
	}
	if auth != nil {
		opts = append(opts, auth)
	}

	if po := c.Pool.Overrides(); po != nil {
		opts = append(opts, remote.WithPoolOverrides(po))
	}
	return opts, nil
}

// Descriptor returns the explicit proxy, or nil when Type is empty.
func (p ProxyConfig) Descriptor() (*proxy.Descriptor, error) {
	if p.Type == "" {
		return nil, nil
	}
	t, err := proxy.ParseType(p.Type)
	if err != nil {
		return nil, wderr.NewConfigurationError("proxy.type", "invalid proxy type", err)
	}
	return &proxy.Descriptor{
		Type:          t,
		HTTPProxy:     p.HTTPProxy,
		SSLProxy:      p.SSLProxy,
		SocksProxy:    p.SocksProxy,
		SocksUsername: p.SocksUsername,
		SocksPassword: p.SocksPassword,
		NoProxy:       p.NoProxy,
	}, nil
}

func (a AuthConfig) option() (remote.Option, error) {
	t, err := remote.ParseAuthType(a.Type)
	if err != nil {
		return nil, err
	}
	switch t {
	case remote.AuthBasic:
		return remote.WithBasicAuth(a.Username, a.Password), nil
	case remote.AuthBearer:
		return remote.WithBearerToken(a.Token), nil
	case remote.AuthXAPIKey:
		return remote.WithAPIKey(a.Token), nil
	}
	return nil, nil
}

// Overrides returns the pool overrides, or nil when nothing is set.
func (p PoolConfig) Overrides() *remote.PoolOverrides {
	if p == (PoolConfig{}) {
		return nil
	}
	po := &remote.PoolOverrides{
		Timeout:        p.Timeout.Std(),
		ConnectTimeout: p.ConnectTimeout.Std(),
		ReadTimeout:    p.ReadTimeout.Std(),
		PoolMaxSize:    p.MaxSize,
		Block:          p.Block,
		RateLimit:      p.RateLimit,
		RateBurst:      p.RateBurst,
	}
	if p.Retries > 0 {
		po.Retry = &remote.RetryPolicy{
			Max:     p.Retries,
			WaitMin: p.RetryWaitMin.Std(),
			WaitMax: p.RetryWaitMax.Std(),
		}
	}
	if p.BreakerThreshold > 0 || p.BreakerCooldown > 0 {
		po.Breaker = &remote.BreakerPolicy{
			Threshold: p.BreakerThreshold,
			Cooldown:  p.BreakerCooldown.Std(),
		}
	}
	return po
}

// LoggerConfig converts the logging section.
func (l LogConfig) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	if l.Development {
		cfg = logging.DevelopmentConfig()
	}
	if l.Level != "" {
		cfg.Level = l.Level
	}
	return cfg
}
