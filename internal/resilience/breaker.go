package resilience

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrCircuitOpen = errors.New("circuit breaker is open")
	ErrProbing     = errors.New("circuit breaker is probing the remote end")
)

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures the circuit breaker behavior
type Settings struct {
	// Threshold is the number of consecutive failures that opens the
	// breaker. Default 5.
	Threshold uint32
	// Cooldown is how long the breaker stays open before letting probes
	// through. Default 30s.
	Cooldown time.Duration
	// Probes is the number of concurrent half-open requests, all of which
	// must succeed to close the breaker. Default 1.
	Probes uint32
	// OnStateChange is called with the lock held; it must not call back
	// into the breaker.
	OnStateChange func(from, to State)

	now func() time.Time
}

// Breaker fails fast after repeated failures against one remote end.
type Breaker struct {
	settings Settings

	mu        sync.Mutex
	state     State
	failures  uint32
	successes uint32
	inflight  uint32
	openedAt  time.Time
}

// New creates a new circuit breaker with the given settings
func New(settings Settings) *Breaker {
	if settings.Threshold == 0 {
		settings.Threshold = 5
	}
	if settings.Cooldown == 0 {
		settings.Cooldown = 30 * time.Second
	}
	if settings.Probes == 0 {
		settings.Probes = 1
	}
	if settings.now == nil {
		settings.now = time.Now
	}
	return &Breaker{settings: settings}
}

// State returns the current state of the circuit breaker
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current()
}

// Allow reports whether a request may go out. Every nil return must be
// followed by exactly one Record.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current() {
	case StateOpen:
		return ErrCircuitOpen
	case StateHalfOpen:
		if b.inflight >= b.settings.Probes {
			return ErrProbing
		}
		b.inflight++
	}
	return nil
}

// Record reports the outcome of an allowed request.
func (b *Breaker) Record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current() {
	case StateClosed:
		if success {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.settings.Threshold {
			b.setState(StateOpen)
		}
	case StateHalfOpen:
		if b.inflight > 0 {
			b.inflight--
		}
		if !success {
			b.setState(StateOpen)
			return
		}
		b.successes++
		if b.successes >= b.settings.Probes {
			b.setState(StateClosed)
		}
	}
}

// current moves an open breaker to half-open once the cooldown passed.
func (b *Breaker) current() State {
	if b.state == StateOpen && b.settings.now().Sub(b.openedAt) >= b.settings.Cooldown {
		b.setState(StateHalfOpen)
	}
	return b.state
}

func (b *Breaker) setState(state State) {
	if b.state == state {
		return
	}
	prev := b.state
	b.state = state
	b.failures, b.successes, b.inflight = 0, 0, 0
	if state == StateOpen {
		b.openedAt = b.settings.now()
	}
	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(prev, state)
	}
}
