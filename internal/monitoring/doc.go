/*
Package monitoring provides Prometheus metrics for remote WebDriver traffic.

# Overview

A Metrics value is attached to a connection with remote.WithMetrics and
records, per command, the outcome, round-trip duration and body sizes, plus
the number of pooled transports built by kind (direct, proxy, socks).

# Usage

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	conn, err := remote.New("http://localhost:4444", remote.WithMetrics(metrics))

	// Expose with promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

# Outcomes

	ok               2xx envelope
	remote_error     error envelope from the remote end
	transport_error  connection, TLS or timeout failure
	protocol_error   malformed body
	rejected         unknown command or missing parameter
*/
package monitoring
