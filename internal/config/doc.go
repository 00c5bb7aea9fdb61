// Package config loads wdctl configuration.
//
// Values start from Default, are overlaid by an optional YAML, TOML or JSON
// file, and finally by WDREMOTE_* environment variables.
//
// Example Usage:
//
//	cfg, err := config.LoadFile("wdremote.yaml")
//	if err != nil {
//		return err
//	}
//	opts, err := cfg.ClientOptions()
//	conn, err := remote.New(cfg.Remote.URL, opts...)
//
// Environment Variables:
//   - WDREMOTE_URL, WDREMOTE_KEEP_ALIVE, WDREMOTE_TIMEOUT, WDREMOTE_CA_CERTS,
//     WDREMOTE_IGNORE_CERTIFICATES, WDREMOTE_USER_AGENT, WDREMOTE_EXTRA_HEADERS
//   - WDREMOTE_PROXY_TYPE, WDREMOTE_HTTP_PROXY, WDREMOTE_SSL_PROXY,
//     WDREMOTE_SOCKS_PROXY, WDREMOTE_NO_PROXY, WDREMOTE_IGNORE_PROXY
//   - WDREMOTE_AUTH_TYPE, WDREMOTE_USERNAME, WDREMOTE_PASSWORD, WDREMOTE_TOKEN
//   - WDREMOTE_POOL_* transport overrides, WDREMOTE_RATE_LIMIT
//   - WDREMOTE_LOG_LEVEL, WDREMOTE_LOG_DEV, WDREMOTE_METRICS
package config
