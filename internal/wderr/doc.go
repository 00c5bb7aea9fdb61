// Package wderr defines the classified errors surfaced by the remote
// WebDriver connection layer.
//
// Callers never see raw transport errors. Every failure is one of:
//   - ConfigurationError: invalid or contradictory auth/proxy/TLS settings
//   - ProxyResolutionError: malformed proxy URL
//   - TransportError: connection refused, DNS, TLS handshake, timeout
//   - ProtocolError: non-JSON or schema-violating response body
//   - UnknownCommandError: command name not in the registry
//   - InvalidArgumentError: URL template parameter missing
//   - CommandExecutionError: error envelope returned by the remote end
//
// The underlying cause is preserved and reachable through errors.Unwrap.
package wderr
