package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all wdctl configuration.
type Config struct {
	Remote  RemoteConfig  `yaml:"remote" toml:"remote" json:"remote"`
	Proxy   ProxyConfig   `yaml:"proxy" toml:"proxy" json:"proxy"`
	Auth    AuthConfig    `yaml:"auth" toml:"auth" json:"auth"`
	Pool    PoolConfig    `yaml:"pool" toml:"pool" json:"pool"`
	Logging LogConfig     `yaml:"logging" toml:"logging" json:"logging"`
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics" json:"metrics"`
}

// RemoteConfig holds the remote end address and transport settings.
type RemoteConfig struct {
	URL                string            `envconfig:"WDREMOTE_URL" yaml:"url" toml:"url" json:"url"`
	KeepAlive          bool              `envconfig:"WDREMOTE_KEEP_ALIVE" yaml:"keep_alive" toml:"keep_alive" json:"keep_alive"`
	Timeout            Duration          `envconfig:"WDREMOTE_TIMEOUT" yaml:"timeout" toml:"timeout" json:"timeout"`
	CACerts            string            `envconfig:"WDREMOTE_CA_CERTS" yaml:"ca_certs" toml:"ca_certs" json:"ca_certs"`
	IgnoreCertificates bool              `envconfig:"WDREMOTE_IGNORE_CERTIFICATES" yaml:"ignore_certificates" toml:"ignore_certificates" json:"ignore_certificates"`
	UserAgent          string            `envconfig:"WDREMOTE_USER_AGENT" yaml:"user_agent" toml:"user_agent" json:"user_agent"`
	ExtraHeaders       map[string]string `envconfig:"WDREMOTE_EXTRA_HEADERS" yaml:"extra_headers" toml:"extra_headers" json:"extra_headers"`
}

// ProxyConfig describes an explicit proxy. An empty Type defers to
// HTTP_PROXY, HTTPS_PROXY and NO_PROXY.
type ProxyConfig struct {
	Type          string   `envconfig:"WDREMOTE_PROXY_TYPE" yaml:"type" toml:"type" json:"type"`
	HTTPProxy     string   `envconfig:"WDREMOTE_HTTP_PROXY" yaml:"http_proxy" toml:"http_proxy" json:"http_proxy"`
	SSLProxy      string   `envconfig:"WDREMOTE_SSL_PROXY" yaml:"ssl_proxy" toml:"ssl_proxy" json:"ssl_proxy"`
	SocksProxy    string   `envconfig:"WDREMOTE_SOCKS_PROXY" yaml:"socks_proxy" toml:"socks_proxy" json:"socks_proxy"`
	SocksUsername string   `envconfig:"WDREMOTE_SOCKS_USERNAME" yaml:"socks_username" toml:"socks_username" json:"socks_username"`
	SocksPassword string   `envconfig:"WDREMOTE_SOCKS_PASSWORD" yaml:"socks_password" toml:"socks_password" json:"socks_password"`
	NoProxy       []string `envconfig:"WDREMOTE_NO_PROXY" yaml:"no_proxy" toml:"no_proxy" json:"no_proxy"`
	Ignore        bool     `envconfig:"WDREMOTE_IGNORE_PROXY" yaml:"ignore" toml:"ignore" json:"ignore"`
}

// AuthConfig holds remote end credentials.
type AuthConfig struct {
	Type     string `envconfig:"WDREMOTE_AUTH_TYPE" yaml:"type" toml:"type" json:"type"`
	Username string `envconfig:"WDREMOTE_USERNAME" yaml:"username" toml:"username" json:"username"`
	Password string `envconfig:"WDREMOTE_PASSWORD" yaml:"password" toml:"password" json:"password"`
	Token    string `envconfig:"WDREMOTE_TOKEN" yaml:"token" toml:"token" json:"token"`
}

// PoolConfig holds low-level transport overrides. Zero values keep the
// computed defaults.
type PoolConfig struct {
	Timeout        Duration `envconfig:"WDREMOTE_POOL_TIMEOUT" yaml:"timeout" toml:"timeout" json:"timeout"`
	ConnectTimeout Duration `envconfig:"WDREMOTE_POOL_CONNECT_TIMEOUT" yaml:"connect_timeout" toml:"connect_timeout" json:"connect_timeout"`
	ReadTimeout    Duration `envconfig:"WDREMOTE_POOL_READ_TIMEOUT" yaml:"read_timeout" toml:"read_timeout" json:"read_timeout"`
	Retries        int      `envconfig:"WDREMOTE_POOL_RETRIES" yaml:"retries" toml:"retries" json:"retries"`
	RetryWaitMin   Duration `envconfig:"WDREMOTE_POOL_RETRY_WAIT_MIN" yaml:"retry_wait_min" toml:"retry_wait_min" json:"retry_wait_min"`
	RetryWaitMax   Duration `envconfig:"WDREMOTE_POOL_RETRY_WAIT_MAX" yaml:"retry_wait_max" toml:"retry_wait_max" json:"retry_wait_max"`
	MaxSize        int      `envconfig:"WDREMOTE_POOL_MAX_SIZE" yaml:"max_size" toml:"max_size" json:"max_size"`
	Block          bool     `envconfig:"WDREMOTE_POOL_BLOCK" yaml:"block" toml:"block" json:"block"`
	RateLimit      float64  `envconfig:"WDREMOTE_RATE_LIMIT" yaml:"rate_limit" toml:"rate_limit" json:"rate_limit"`
	RateBurst      int      `envconfig:"WDREMOTE_RATE_BURST" yaml:"rate_burst" toml:"rate_burst" json:"rate_burst"`

	BreakerThreshold int      `envconfig:"WDREMOTE_BREAKER_THRESHOLD" yaml:"breaker_threshold" toml:"breaker_threshold" json:"breaker_threshold"`
	BreakerCooldown  Duration `envconfig:"WDREMOTE_BREAKER_COOLDOWN" yaml:"breaker_cooldown" toml:"breaker_cooldown" json:"breaker_cooldown"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"WDREMOTE_LOG_LEVEL" yaml:"level" toml:"level" json:"level"`
	Development bool   `envconfig:"WDREMOTE_LOG_DEV" yaml:"development" toml:"development" json:"development"`
}

// MetricsConfig controls the Prometheus text dump printed after a command.
type MetricsConfig struct {
	Enabled bool `envconfig:"WDREMOTE_METRICS" yaml:"enabled" toml:"enabled" json:"enabled"`
}

// Load reads configuration from environment variables on top of Default.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads path (YAML, TOML or JSON, by extension) on top of
// Default, then applies environment variables. An empty path skips the
// file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Remote: RemoteConfig{
			URL:       "http://localhost:4444",
			KeepAlive: true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".json":
		err = sonic.ConfigStd.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config file extension %q", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
