package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for executed commands.
const (
	OutcomeOK             = "ok"
	OutcomeRemoteError    = "remote_error"
	OutcomeTransportError = "transport_error"
	OutcomeProtocolError  = "protocol_error"
	OutcomeRejected       = "rejected"
)

// Metrics holds the Prometheus collectors for a remote connection
type Metrics struct {
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec
	ManagerBuilds   *prometheus.CounterVec

	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds running totals for quick inspection without a scrape.
type Snapshot struct {
	Commands      int64
	Failures      int64
	ManagerBuilds int64
	TotalDuration time.Duration
}

// NewMetrics registers the collectors with reg. A nil reg uses a private
// registry, which keeps repeated construction in tests from colliding.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		CommandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wdremote_commands_total",
				Help: "Total number of WebDriver commands executed",
			},
			[]string{"command", "method", "outcome"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wdremote_command_duration_seconds",
				Help:    "WebDriver command round-trip duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"command"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wdremote_request_size_bytes",
				Help:    "WebDriver request body size in bytes",
				Buckets: []float64{2, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"command"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wdremote_response_size_bytes",
				Help:    "WebDriver response body size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"command"},
		),
		ManagerBuilds: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wdremote_connection_manager_builds_total",
				Help: "Number of pooled transports built, by kind",
			},
			[]string{"kind"},
		),
	}
}

// RecordCommand records one executed command
func (m *Metrics) RecordCommand(command, method, outcome string, duration time.Duration, reqSize, respSize int) {
	if m == nil {
		return
	}
	m.CommandsTotal.WithLabelValues(command, method, outcome).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(command).Observe(float64(reqSize))
	if outcome == OutcomeOK || outcome == OutcomeRemoteError {
		m.ResponseSize.WithLabelValues(command).Observe(float64(respSize))
	}

	m.mu.Lock()
	m.snapshot.Commands++
	m.snapshot.TotalDuration += duration
	if outcome != OutcomeOK {
		m.snapshot.Failures++
	}
	m.mu.Unlock()
}

// RecordManagerBuild records a pooled transport build
func (m *Metrics) RecordManagerBuild(kind string) {
	if m == nil {
		return
	}
	m.ManagerBuilds.WithLabelValues(kind).Inc()

	m.mu.Lock()
	m.snapshot.ManagerBuilds++
	m.mu.Unlock()
}

// Snapshot returns a copy of the running totals
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// Timer measures one command
type Timer struct {
	start   time.Time
	metrics *Metrics
	command string
	method  string
}

// NewTimer starts timing a command
func NewTimer(metrics *Metrics, command, method string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		command: command,
		method:  method,
	}
}

// Stop records the duration with its outcome and body sizes
func (t *Timer) Stop(outcome string, reqSize, respSize int) time.Duration {
	duration := time.Since(t.start)
	t.metrics.RecordCommand(t.command, t.method, outcome, duration, reqSize, respSize)
	return duration
}
